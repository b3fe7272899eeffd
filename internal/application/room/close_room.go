package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
)

// CloseRoomUseCase closes the room for the draw. Closing freezes membership
// and room details; it happens exactly once.
type CloseRoomUseCase struct {
	appcore.BaseUseCase

	rooms Repository
	opts  options
}

// NewCloseRoomUseCase creates a new CloseRoomUseCase.
func NewCloseRoomUseCase(rooms Repository, opts ...Option) *CloseRoomUseCase {
	return &CloseRoomUseCase{
		rooms: rooms,
		opts:  newOptions(opts),
	}
}

// Execute closes the caller's room and returns the updated aggregate.
func (uc *CloseRoomUseCase) Execute(ctx context.Context, cmd CloseRoomCommand) (Result, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return Result{}, uc.WrapError("validate context", err)
	}
	if err := appcore.ValidateRequired(fieldUserCode, cmd.UserCode); err != nil {
		return Result{}, err
	}

	rm, err := uc.rooms.GetByUserCode(ctx, cmd.UserCode)
	if err != nil {
		return Result{}, errs.NewNotFound(fieldUserCode, "room not found")
	}

	caller, ok := rm.FindUserByCode(cmd.UserCode)
	if !ok {
		return Result{}, errs.NewNotFound(fieldUserCode, "user not found")
	}
	if !caller.IsAdmin() {
		return Result{}, errs.NewBadRequest(fieldUserCode, "user is not an admin")
	}

	// Report the more specific failure first: an already-closed room beats
	// a too-small one.
	if rm.IsClosed() {
		return Result{}, errs.NewBadRequest(fieldClosedOn, "room is already closed")
	}
	if len(rm.Users()) < room.MinUsersToClose {
		return Result{}, errs.NewBadRequest(fieldUsers,
			fmt.Sprintf("at least %d users are required to close the room", room.MinUsersToClose))
	}

	if err = rm.Close(); err != nil {
		return Result{}, errs.NewBadRequest(fieldClosedOn, "room cannot be closed")
	}

	if err = uc.rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return Result{}, errs.NewConflict(fieldVersion, "room was modified concurrently")
		}
		return Result{}, errs.NewBadRequest("room", err.Error())
	}

	uc.opts.publish(ctx, room.NewRoomClosed(
		rm.ID(), *rm.ClosedOn(),
		event.NewMetadata(caller.ID().String(), ""),
	))

	return Result{Room: rm}, nil
}
