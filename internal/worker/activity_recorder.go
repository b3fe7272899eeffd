// Package worker contains the background consumers of room events.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/infrastructure/eventbus"
	inframongo "github.com/secretnick/secretnick/internal/infrastructure/mongodb"
)

// Subscriber registers event handlers on a bus.
type Subscriber interface {
	Subscribe(eventType string, handler eventbus.EventHandler) error
}

// payloadEvent is implemented by events that carry a raw JSON payload,
// such as events deserialized from Redis.
type payloadEvent interface {
	event.DomainEvent
	Payload() json.RawMessage
}

// ActivityRecorder consumes room events and appends them to the
// room_activity collection, giving each room an audit trail of membership
// and lifecycle changes.
type ActivityRecorder struct {
	activity *mongo.Collection
	logger   *slog.Logger
}

// NewActivityRecorder creates a new activity recorder.
func NewActivityRecorder(db *mongo.Database, logger *slog.Logger) *ActivityRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityRecorder{
		activity: db.Collection(inframongo.CollectionRoomActivity),
		logger:   logger,
	}
}

// Register subscribes the recorder to every room event type.
func (r *ActivityRecorder) Register(bus Subscriber) error {
	eventTypes := []string{
		room.EventTypeRoomCreated,
		room.EventTypeUserJoined,
		room.EventTypeUserDeleted,
		room.EventTypeWishlistUpdated,
		room.EventTypeDetailsUpdated,
		room.EventTypeRoomClosed,
	}

	for _, eventType := range eventTypes {
		if err := bus.Subscribe(eventType, r.Record); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}

	return nil
}

// Record writes a single activity document for the event.
func (r *ActivityRecorder) Record(ctx context.Context, evt event.DomainEvent) error {
	doc := activityDocument{
		RoomID:     evt.AggregateID(),
		EventType:  evt.EventType(),
		ActorID:    evt.Metadata().UserID,
		OccurredAt: evt.OccurredAt(),
		RecordedAt: time.Now().UTC(),
		Details:    eventDetails(evt),
	}

	if _, err := r.activity.InsertOne(ctx, doc); err != nil {
		r.logger.ErrorContext(ctx, "failed to record room activity",
			slog.String("room_id", doc.RoomID),
			slog.String("event_type", doc.EventType),
			slog.String("error", err.Error()),
		)
		return err
	}

	r.logger.DebugContext(ctx, "room activity recorded",
		slog.String("room_id", doc.RoomID),
		slog.String("event_type", doc.EventType),
	)

	return nil
}

// activityDocument is the MongoDB representation of one activity record.
type activityDocument struct {
	RoomID     string    `bson:"room_id"`
	EventType  string    `bson:"event_type"`
	ActorID    string    `bson:"actor_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
	Details    bson.M    `bson:"details,omitempty"`
}

// eventDetails extracts the event's payload fields. Events arriving from the
// wire carry a raw payload; in-process events are serialized directly.
func eventDetails(evt event.DomainEvent) bson.M {
	var raw []byte

	if pe, ok := evt.(payloadEvent); ok {
		raw = pe.Payload()
	} else {
		data, err := json.Marshal(evt)
		if err != nil {
			return nil
		}
		raw = data
	}

	var details bson.M
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}
	return details
}
