package room

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
	fieldClosedOn = "room.closedOn"
	fieldVersion  = "room.version"
	fieldUsers    = "room.users"
)

// UpdateRoomUseCase changes the descriptive fields of an open room. Only the
// room's admin may do this.
type UpdateRoomUseCase struct {
	appcore.BaseUseCase

	rooms Repository
	opts  options
}

// NewUpdateRoomUseCase creates a new UpdateRoomUseCase.
func NewUpdateRoomUseCase(rooms Repository, opts ...Option) *UpdateRoomUseCase {
	return &UpdateRoomUseCase{
		rooms: rooms,
		opts:  newOptions(opts),
	}
}

// Execute updates the room details and returns the updated aggregate.
func (uc *UpdateRoomUseCase) Execute(ctx context.Context, cmd UpdateRoomCommand) (Result, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return Result{}, uc.WrapError("validate context", err)
	}
	if err := uc.validate(cmd); err != nil {
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

	if rm.IsClosed() {
		return Result{}, errs.NewBadRequest(fieldClosedOn, "room is already closed")
	}

	if err = rm.UpdateDetails(cmd.Name, cmd.Description, cmd.Budget); err != nil {
		return Result{}, errs.NewBadRequest("room.name", "is required")
	}

	if err = uc.rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return Result{}, errs.NewConflict(fieldVersion, "room was modified concurrently")
		}
		return Result{}, errs.NewBadRequest("room", err.Error())
	}

	uc.opts.publish(ctx, room.NewDetailsUpdated(
		rm.ID(), rm.Name(), rm.Budget(),
		event.NewMetadata(caller.ID().String(), ""),
	))

	return Result{Room: rm}, nil
}

func (uc *UpdateRoomUseCase) validate(cmd UpdateRoomCommand) error {
	if err := appcore.ValidateRequired(fieldUserCode, cmd.UserCode); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("room.name", cmd.Name); err != nil {
		return err
	}
	return appcore.ValidateMaxLength("room.name", cmd.Name, maxNameLength)
}
