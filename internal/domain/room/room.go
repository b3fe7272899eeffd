// Package room contains the gift exchange Room aggregate and its membership.
package room

import (
	"slices"
	"time"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// MinUsersToClose is the minimum number of participants required before the
// room can be closed for the draw. A meaningful exchange needs a cycle longer
// than a swap.
const MinUsersToClose = 3

// Room is the aggregate root of a gift exchange room. Membership truth lives
// here; the global user directory is a separate read index maintained by the
// persistence layer.
type Room struct {
	id             uuid.UUID
	name           string
	description    string
	budget         string
	invitationCode string
	closedOn       *time.Time
	users          []*User
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRoom creates a new open room with a generated invitation code and no
// users yet. The admin is added with AddAdmin before the first save.
func NewRoom(name, description, budget string) (*Room, error) {
	if name == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now()
	return &Room{
		id:             uuid.NewUUID(),
		name:           name,
		description:    description,
		budget:         budget,
		invitationCode: uuid.NewUUID().String(),
		users:          make([]*User, 0),
		version:        0,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct restores a Room from storage. Used by repositories for
// hydration without re-running creation rules; all values must come from a
// previously persisted aggregate.
func Reconstruct(
	id uuid.UUID,
	name, description, budget, invitationCode string,
	closedOn *time.Time,
	users []*User,
	version int,
	createdAt, updatedAt time.Time,
) *Room {
	if users == nil {
		users = make([]*User, 0)
	}
	return &Room{
		id:             id,
		name:           name,
		description:    description,
		budget:         budget,
		invitationCode: invitationCode,
		closedOn:       closedOn,
		users:          users,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// AddAdmin adds the room's admin user. A room has exactly one admin; calling
// this on a room that already has one fails.
func (r *Room) AddAdmin(info PersonalInfo, wishlist []Wish) (*User, error) {
	if r.Admin() != nil {
		return nil, errs.ErrAlreadyExists
	}
	if r.IsClosed() {
		return nil, errs.ErrInvalidState
	}

	u, err := newUser(r.id, true, info, wishlist)
	if err != nil {
		return nil, err
	}
	r.users = append(r.users, u)
	r.updatedAt = time.Now()
	return u, nil
}

// AddUser adds a regular participant to an open room.
func (r *Room) AddUser(info PersonalInfo, wishlist []Wish) (*User, error) {
	if r.IsClosed() {
		return nil, errs.ErrInvalidState
	}

	u, err := newUser(r.id, false, info, wishlist)
	if err != nil {
		return nil, err
	}
	r.users = append(r.users, u)
	r.updatedAt = time.Now()
	return u, nil
}

// RemoveUser removes the user with the given ID from the membership
// collection by exact identity match. It carries no authorization or
// closed-room rules; those belong to the command pipeline that calls it.
func (r *Room) RemoveUser(userID uuid.UUID) error {
	idx := slices.IndexFunc(r.users, func(u *User) bool { return u.ID() == userID })
	if idx < 0 {
		return errs.ErrNotFound
	}
	r.users = slices.Delete(r.users, idx, idx+1)
	r.updatedAt = time.Now()
	return nil
}

// FindUserByCode looks up a member by per-room auth code.
func (r *Room) FindUserByCode(authCode string) (*User, bool) {
	for _, u := range r.users {
		if u.AuthCode() == authCode {
			return u, true
		}
	}
	return nil, false
}

// FindUserByID looks up a member by user ID.
func (r *Room) FindUserByID(userID uuid.UUID) (*User, bool) {
	for _, u := range r.users {
		if u.ID() == userID {
			return u, true
		}
	}
	return nil, false
}

// Admin returns the room's admin user, or nil if none has been added yet.
func (r *Room) Admin() *User {
	for _, u := range r.users {
		if u.IsAdmin() {
			return u
		}
	}
	return nil
}

// UpdateDetails changes the room's descriptive fields. Closed rooms are
// immutable.
func (r *Room) UpdateDetails(name, description, budget string) error {
	if r.IsClosed() {
		return errs.ErrInvalidState
	}
	if name == "" {
		return errs.ErrInvalidInput
	}
	r.name = name
	r.description = description
	r.budget = budget
	r.updatedAt = time.Now()
	return nil
}

// Close sets the closure timestamp. The timestamp is set exactly once and
// freezes membership; closing requires MinUsersToClose participants.
func (r *Room) Close() error {
	if r.IsClosed() {
		return errs.ErrInvalidState
	}
	if len(r.users) < MinUsersToClose {
		return errs.ErrInvalidState
	}
	now := time.Now()
	r.closedOn = &now
	r.updatedAt = now
	return nil
}

// IsClosed reports whether the closure timestamp has been set.
func (r *Room) IsClosed() bool {
	return r.closedOn != nil
}

// ID returns the room ID.
func (r *Room) ID() uuid.UUID { return r.id }

// Name returns the room name.
func (r *Room) Name() string { return r.name }

// Description returns the room description.
func (r *Room) Description() string { return r.description }

// Budget returns the agreed gift budget.
func (r *Room) Budget() string { return r.budget }

// InvitationCode returns the code participants join with.
func (r *Room) InvitationCode() string { return r.invitationCode }

// ClosedOn returns the closure timestamp, nil while the room is open.
func (r *Room) ClosedOn() *time.Time { return r.closedOn }

// Users returns the membership collection.
func (r *Room) Users() []*User { return r.users }

// Version returns the optimistic concurrency token of the persisted state.
func (r *Room) Version() int { return r.version }

// CreatedAt returns the creation time.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
