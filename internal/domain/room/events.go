package room

import (
	"time"

	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// AggregateType identifies room events on the bus.
const AggregateType = "Room"

// Event types
const (
	EventTypeRoomCreated     = "room.created"
	EventTypeUserJoined      = "room.user_joined"
	EventTypeUserDeleted     = "room.user_deleted"
	EventTypeWishlistUpdated = "room.wishlist_updated"
	EventTypeDetailsUpdated  = "room.details_updated"
	EventTypeRoomClosed      = "room.closed"
)

// Created is emitted when a room is created together with its admin.
type Created struct {
	event.BaseEvent

	Name        string
	AdminUserID uuid.UUID
	CreatedAt   time.Time
}

// NewRoomCreated creates a Created event.
func NewRoomCreated(roomID, adminUserID uuid.UUID, name string, createdAt time.Time, metadata event.Metadata) *Created {
	return &Created{
		BaseEvent:   event.NewBaseEvent(EventTypeRoomCreated, roomID.String(), AggregateType, metadata),
		Name:        name,
		AdminUserID: adminUserID,
		CreatedAt:   createdAt,
	}
}

// UserJoined is emitted when a participant joins via invitation code.
type UserJoined struct {
	event.BaseEvent

	UserID   uuid.UUID
	JoinedAt time.Time
}

// NewUserJoined creates a UserJoined event.
func NewUserJoined(roomID, userID uuid.UUID, joinedAt time.Time, metadata event.Metadata) *UserJoined {
	return &UserJoined{
		BaseEvent: event.NewBaseEvent(EventTypeUserJoined, roomID.String(), AggregateType, metadata),
		UserID:    userID,
		JoinedAt:  joinedAt,
	}
}

// UserDeleted is emitted when the admin removes a participant.
type UserDeleted struct {
	event.BaseEvent

	UserID    uuid.UUID
	DeletedBy uuid.UUID
}

// NewUserDeleted creates a UserDeleted event.
func NewUserDeleted(roomID, userID, deletedBy uuid.UUID, metadata event.Metadata) *UserDeleted {
	return &UserDeleted{
		BaseEvent: event.NewBaseEvent(EventTypeUserDeleted, roomID.String(), AggregateType, metadata),
		UserID:    userID,
		DeletedBy: deletedBy,
	}
}

// WishlistUpdated is emitted when a participant changes their wishlist.
type WishlistUpdated struct {
	event.BaseEvent

	UserID    uuid.UUID
	WishCount int
}

// NewWishlistUpdated creates a WishlistUpdated event.
func NewWishlistUpdated(roomID, userID uuid.UUID, wishCount int, metadata event.Metadata) *WishlistUpdated {
	return &WishlistUpdated{
		BaseEvent: event.NewBaseEvent(EventTypeWishlistUpdated, roomID.String(), AggregateType, metadata),
		UserID:    userID,
		WishCount: wishCount,
	}
}

// DetailsUpdated is emitted when the admin changes the room details.
type DetailsUpdated struct {
	event.BaseEvent

	Name   string
	Budget string
}

// NewDetailsUpdated creates a DetailsUpdated event.
func NewDetailsUpdated(roomID uuid.UUID, name, budget string, metadata event.Metadata) *DetailsUpdated {
	return &DetailsUpdated{
		BaseEvent: event.NewBaseEvent(EventTypeDetailsUpdated, roomID.String(), AggregateType, metadata),
		Name:      name,
		Budget:    budget,
	}
}

// Closed is emitted when the room is closed for the draw.
type Closed struct {
	event.BaseEvent

	ClosedOn time.Time
}

// NewRoomClosed creates a Closed event.
func NewRoomClosed(roomID uuid.UUID, closedOn time.Time, metadata event.Metadata) *Closed {
	return &Closed{
		BaseEvent: event.NewBaseEvent(EventTypeRoomClosed, roomID.String(), AggregateType, metadata),
		ClosedOn:  closedOn,
	}
}
