package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
	inframongo "github.com/secretnick/secretnick/internal/infrastructure/mongodb"
)

// MongoUserReadRepository reads the global user directory maintained by
// MongoRoomRepository.
type MongoUserReadRepository struct {
	users  *mongo.Collection
	logger *slog.Logger
}

// UserRepoOption configures MongoUserReadRepository.
type UserRepoOption func(*MongoUserReadRepository)

// WithUserRepoLogger sets the logger for the user read repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *MongoUserReadRepository) {
		r.logger = logger
	}
}

// NewMongoUserReadRepository creates a new MongoDB user read repository.
func NewMongoUserReadRepository(db *mongo.Database, opts ...UserRepoOption) *MongoUserReadRepository {
	r := &MongoUserReadRepository{
		users:  db.Collection(inframongo.CollectionUsers),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// GetByID finds a user by ID across all rooms.
func (r *MongoUserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*room.User, error) {
	if userID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": userID.String()}
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by ID",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}

// GetByAuthCode finds a user by their per-room auth code.
func (r *MongoUserReadRepository) GetByAuthCode(ctx context.Context, authCode string) (*room.User, error) {
	if authCode == "" {
		return nil, errs.ErrInvalidInput
	}

	filter := bson.M{"auth_code": authCode}
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.ErrorContext(ctx, "failed to find user by auth code",
				slog.String("error", err.Error()),
			)
		}
		return nil, HandleMongoError(err, "user")
	}

	return documentToUser(&doc)
}
