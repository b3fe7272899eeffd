// Package room contains the use cases operating on the room aggregate itself.
package room

import (
	"context"

	"github.com/secretnick/secretnick/internal/domain/room"
)

// Repository is the room store as this package needs it. Interfaces are
// declared on the consumer side (application layer).
type Repository interface {
	// Save persists a newly created room aggregate.
	Save(ctx context.Context, r *room.Room) error

	// GetByUserCode resolves the room whose membership contains a user with
	// the given auth code.
	GetByUserCode(ctx context.Context, userCode string) (*room.Room, error)

	// Update persists a mutated room aggregate. The write is guarded by the
	// aggregate version; a lost race yields errs.ErrConcurrentModification.
	Update(ctx context.Context, r *room.Room) error
}
