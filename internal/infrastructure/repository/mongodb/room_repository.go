package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
	inframongo "github.com/secretnick/secretnick/internal/infrastructure/mongodb"
)

// MongoRoomRepository implements the application layer room repositories.
//
// The rooms collection is the source of truth, with the membership embedded
// in the room document. The users collection is a directory projection kept
// in sync on every write so users can be resolved by ID without scanning
// rooms.
type MongoRoomRepository struct {
	rooms  *mongo.Collection
	users  *mongo.Collection
	logger *slog.Logger
}

// RoomRepoOption configures MongoRoomRepository.
type RoomRepoOption func(*MongoRoomRepository)

// WithRoomRepoLogger sets the logger for the room repository.
func WithRoomRepoLogger(logger *slog.Logger) RoomRepoOption {
	return func(r *MongoRoomRepository) {
		r.logger = logger
	}
}

// NewMongoRoomRepository creates a new MongoDB room repository.
func NewMongoRoomRepository(db *mongo.Database, opts ...RoomRepoOption) *MongoRoomRepository {
	r := &MongoRoomRepository{
		rooms:  db.Collection(inframongo.CollectionRooms),
		users:  db.Collection(inframongo.CollectionUsers),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Save persists a newly created room aggregate.
func (r *MongoRoomRepository) Save(ctx context.Context, rm *room.Room) error {
	if rm == nil || rm.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := roomToDocument(rm)
	_, err := r.rooms.InsertOne(ctx, doc)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save room",
			slog.String("room_id", rm.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "room")
	}

	return r.syncUserDirectory(ctx, &doc)
}

// GetByUserCode resolves the room whose membership contains a user with the
// given auth code.
func (r *MongoRoomRepository) GetByUserCode(ctx context.Context, userCode string) (*room.Room, error) {
	if userCode == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"users.auth_code": userCode}
	var doc roomDocument
	err := r.rooms.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find room by user code",
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "room")
	}

	return documentToRoom(&doc)
}

// GetByInvitationCode resolves a room by its invitation code.
func (r *MongoRoomRepository) GetByInvitationCode(ctx context.Context, invitationCode string) (*room.Room, error) {
	if invitationCode == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"invitation_code": invitationCode}
	var doc roomDocument
	err := r.rooms.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "room")
	}

	return documentToRoom(&doc)
}

// Update persists a mutated room aggregate. The write is guarded by the
// version the aggregate was loaded with; if another writer got there first
// the filter matches nothing and the caller gets ErrConcurrentModification.
func (r *MongoRoomRepository) Update(ctx context.Context, rm *room.Room) error {
	if rm == nil || rm.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc := roomToDocument(rm)
	doc.Version = rm.Version() + 1

	filter := bson.M{
		"room_id": rm.ID().String(),
		"version": rm.Version(),
	}

	res, err := r.rooms.ReplaceOne(ctx, filter, doc)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update room",
			slog.String("room_id", rm.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "room")
	}

	if res.MatchedCount == 0 {
		exists, existsErr := r.roomExists(ctx, rm.ID())
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return errs.ErrNotFound
		}
		return errs.ErrConcurrentModification
	}

	return r.syncUserDirectory(ctx, &doc)
}

func (r *MongoRoomRepository) roomExists(ctx context.Context, id uuid.UUID) (bool, error) {
	filter := bson.M{"room_id": id.String()}
	count, err := r.rooms.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, HandleMongoError(err, "room")
	}
	return count > 0, nil
}

// syncUserDirectory projects the room's membership into the users collection:
// current members are upserted and records of removed members are deleted.
func (r *MongoRoomRepository) syncUserDirectory(ctx context.Context, doc *roomDocument) error {
	memberIDs := make([]string, 0, len(doc.Users))
	for i := range doc.Users {
		u := &doc.Users[i]
		memberIDs = append(memberIDs, u.UserID)

		filter := bson.M{"user_id": u.UserID}
		update := bson.M{"$set": u}
		if _, err := r.users.UpdateOne(ctx, filter, update, UpsertOptions()); err != nil {
			r.logger.ErrorContext(ctx, "failed to sync user directory entry",
				slog.String("user_id", u.UserID),
				slog.String("error", err.Error()),
			)
			return HandleMongoError(err, "user")
		}
	}

	filter := bson.M{
		"room_id": doc.RoomID,
		"user_id": bson.M{"$nin": memberIDs},
	}
	if _, err := r.users.DeleteMany(ctx, filter); err != nil {
		r.logger.ErrorContext(ctx, "failed to prune user directory",
			slog.String("room_id", doc.RoomID),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "user")
	}

	return nil
}

// roomDocument is the MongoDB representation of a room aggregate.
type roomDocument struct {
	RoomID         string         `bson:"room_id"`
	Name           string         `bson:"name"`
	Description    string         `bson:"description"`
	Budget         string         `bson:"budget"`
	InvitationCode string         `bson:"invitation_code"`
	ClosedOn       *time.Time     `bson:"closed_on,omitempty"`
	Users          []userDocument `bson:"users"`
	Version        int            `bson:"version"`
	CreatedAt      time.Time      `bson:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at"`
}

// userDocument is the MongoDB representation of a membership record. The
// same shape is embedded in room documents and stored in the users
// collection.
type userDocument struct {
	UserID       string         `bson:"user_id"`
	RoomID       string         `bson:"room_id"`
	IsAdmin      bool           `bson:"is_admin"`
	AuthCode     string         `bson:"auth_code"`
	FirstName    string         `bson:"first_name"`
	LastName     string         `bson:"last_name"`
	Phone        string         `bson:"phone"`
	Email        *string        `bson:"email,omitempty"`
	DeliveryInfo string         `bson:"delivery_info"`
	Wishlist     []wishDocument `bson:"wishlist"`
	CreatedAt    time.Time      `bson:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at"`
}

type wishDocument struct {
	Name     string `bson:"name"`
	InfoLink string `bson:"info_link,omitempty"`
}

func roomToDocument(rm *room.Room) roomDocument {
	users := make([]userDocument, 0, len(rm.Users()))
	for _, u := range rm.Users() {
		users = append(users, userToDocument(u))
	}

	return roomDocument{
		RoomID:         rm.ID().String(),
		Name:           rm.Name(),
		Description:    rm.Description(),
		Budget:         rm.Budget(),
		InvitationCode: rm.InvitationCode(),
		ClosedOn:       rm.ClosedOn(),
		Users:          users,
		Version:        rm.Version(),
		CreatedAt:      rm.CreatedAt(),
		UpdatedAt:      rm.UpdatedAt(),
	}
}

func userToDocument(u *room.User) userDocument {
	wishes := make([]wishDocument, 0, len(u.Wishlist()))
	for _, w := range u.Wishlist() {
		wishes = append(wishes, wishDocument{Name: w.Name, InfoLink: w.InfoLink})
	}

	return userDocument{
		UserID:       u.ID().String(),
		RoomID:       u.RoomID().String(),
		IsAdmin:      u.IsAdmin(),
		AuthCode:     u.AuthCode(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		Phone:        u.Phone(),
		Email:        StringPtr(u.Email()),
		DeliveryInfo: u.DeliveryInfo(),
		Wishlist:     wishes,
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func documentToRoom(doc *roomDocument) (*room.Room, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.RoomID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	users := make([]*room.User, 0, len(doc.Users))
	for i := range doc.Users {
		u, userErr := documentToUser(&doc.Users[i])
		if userErr != nil {
			return nil, userErr
		}
		users = append(users, u)
	}

	return room.Reconstruct(
		id,
		doc.Name,
		doc.Description,
		doc.Budget,
		doc.InvitationCode,
		doc.ClosedOn,
		users,
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}

func documentToUser(doc *userDocument) (*room.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	roomID, err := uuid.ParseUUID(doc.RoomID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	wishes := make([]room.Wish, 0, len(doc.Wishlist))
	for _, w := range doc.Wishlist {
		wishes = append(wishes, room.Wish{Name: w.Name, InfoLink: w.InfoLink})
	}

	return room.ReconstructUser(
		id,
		roomID,
		doc.IsAdmin,
		doc.AuthCode,
		room.PersonalInfo{
			FirstName:    doc.FirstName,
			LastName:     doc.LastName,
			Phone:        doc.Phone,
			Email:        StringValue(doc.Email),
			DeliveryInfo: doc.DeliveryInfo,
		},
		wishes,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
