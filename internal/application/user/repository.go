package user

import (
	"context"

	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// RoomRepository is the room store as this package needs it. Interfaces are
// declared on the consumer side (application layer).
type RoomRepository interface {
	// GetByUserCode resolves the room whose membership contains a user with
	// the given auth code.
	GetByUserCode(ctx context.Context, userCode string) (*room.Room, error)

	// GetByInvitationCode resolves a room by its invitation code.
	GetByInvitationCode(ctx context.Context, invitationCode string) (*room.Room, error)

	// Update persists a mutated room aggregate. The write is guarded by the
	// aggregate version; a lost race yields errs.ErrConcurrentModification.
	Update(ctx context.Context, r *room.Room) error
}

// UserReadRepository is the global user directory: a room-independent lookup
// of user records. It is deliberately kept separate from RoomRepository —
// membership truth lives in the aggregate, identity truth lives here, and the
// deletion pipeline cross-validates both.
type UserReadRepository interface {
	// GetByID finds a user record by ID across all rooms.
	GetByID(ctx context.Context, userID uuid.UUID) (*room.User, error)
}
