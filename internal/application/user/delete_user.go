// Package user contains the use cases operating on room membership records.
package user

import (
	"context"
	"errors"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
)

// Field names reported in validation failures.
const (
	fieldUserCode = "userCode"
	fieldUserID   = "userId"
	fieldClosedOn = "room.closedOn"
	fieldVersion  = "room.version"
)

// DeleteUserUseCase removes a participant from a room on behalf of its admin.
//
// The checks run in a fixed order and stop at the first failure; callers
// pattern-match on which failure they receive, so the order is part of the
// contract, not an implementation detail.
type DeleteUserUseCase struct {
	appcore.BaseUseCase

	rooms RoomRepository
	users UserReadRepository
	opts  options
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase.
func NewDeleteUserUseCase(rooms RoomRepository, users UserReadRepository, opts ...Option) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		rooms: rooms,
		users: users,
		opts:  newOptions(opts),
	}
}

// Execute runs the deletion pipeline and returns the updated room aggregate.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) (RoomResult, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return RoomResult{}, uc.WrapError("validate context", err)
	}
	if err := uc.validate(cmd); err != nil {
		return RoomResult{}, err
	}

	// Resolve the room by the requester's auth code.
	rm, err := uc.rooms.GetByUserCode(ctx, cmd.UserCode)
	if err != nil {
		return RoomResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}

	// The matched caller must be the room's admin.
	caller, ok := rm.FindUserByCode(cmd.UserCode)
	if !ok {
		return RoomResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}
	if !caller.IsAdmin() {
		return RoomResult{}, errs.NewBadRequest(fieldUserCode, "user is not an admin")
	}

	// Resolve the target in the global directory, not inside the room.
	target, err := uc.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return RoomResult{}, errs.NewNotFound(fieldUserID, "user not found")
	}

	// The target may exist in a different room; a same-ID user elsewhere must
	// never be deletable through this room's admin.
	if target.RoomID() != rm.ID() {
		return RoomResult{}, errs.NewBadRequest(fieldUserID, "user does not belong to admin's room")
	}

	// Re-resolve inside the aggregate. A mismatch between the directory
	// and the room's membership is reported, not repaired.
	toDelete, ok := rm.FindUserByID(cmd.UserID)
	if !ok {
		return RoomResult{}, errs.NewNotFound(fieldUserID, "user not found in room")
	}

	if toDelete.IsAdmin() {
		return RoomResult{}, errs.NewBadRequest(fieldUserID, "cannot delete admin user")
	}

	if rm.IsClosed() {
		return RoomResult{}, errs.NewBadRequest(fieldClosedOn, "room is already closed")
	}

	// Cancellation aborts here, before the aggregate is mutated; a mutation
	// without the guarded write must never become observable.
	if err = uc.ValidateContext(ctx); err != nil {
		return RoomResult{}, uc.WrapError("validate context", err)
	}

	if err = rm.RemoveUser(cmd.UserID); err != nil {
		return RoomResult{}, errs.NewNotFound(fieldUserID, "user not found in room")
	}

	if err = uc.rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return RoomResult{}, errs.NewConflict(fieldVersion, "room was modified concurrently")
		}
		return RoomResult{}, errs.NewBadRequest(fieldUserID, err.Error())
	}

	uc.opts.publish(ctx, room.NewUserDeleted(
		rm.ID(), cmd.UserID, caller.ID(),
		event.NewMetadata(caller.ID().String(), ""),
	))

	return RoomResult{Room: rm}, nil
}

func (uc *DeleteUserUseCase) validate(cmd DeleteUserCommand) error {
	if err := appcore.ValidateRequired(fieldUserCode, cmd.UserCode); err != nil {
		return err
	}
	if err := appcore.ValidateUUID(fieldUserID, cmd.UserID); err != nil {
		return err
	}
	return nil
}
