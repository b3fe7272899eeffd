package room

import (
	"context"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
)

const maxNameLength = 100

// CreateRoomUseCase creates a room together with its single admin user.
type CreateRoomUseCase struct {
	appcore.BaseUseCase

	rooms Repository
	opts  options
}

// NewCreateRoomUseCase creates a new CreateRoomUseCase.
func NewCreateRoomUseCase(rooms Repository, opts ...Option) *CreateRoomUseCase {
	return &CreateRoomUseCase{
		rooms: rooms,
		opts:  newOptions(opts),
	}
}

// Execute creates and persists the room. The returned aggregate carries the
// generated invitation code and the admin's auth code.
func (uc *CreateRoomUseCase) Execute(ctx context.Context, cmd CreateRoomCommand) (Result, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return Result{}, uc.WrapError("validate context", err)
	}
	if err := uc.validate(cmd); err != nil {
		return Result{}, err
	}

	rm, err := room.NewRoom(cmd.Name, cmd.Description, cmd.Budget)
	if err != nil {
		return Result{}, errs.NewBadRequest("room.name", "is required")
	}

	admin, err := rm.AddAdmin(cmd.Admin, cmd.AdminWishlist)
	if err != nil {
		return Result{}, errs.NewBadRequest("adminUser", "invalid admin user data")
	}

	if err = uc.rooms.Save(ctx, rm); err != nil {
		return Result{}, errs.NewBadRequest("room", err.Error())
	}

	uc.opts.publish(ctx, room.NewRoomCreated(
		rm.ID(), admin.ID(), rm.Name(), rm.CreatedAt(),
		event.NewMetadata(admin.ID().String(), ""),
	))

	return Result{Room: rm}, nil
}

func (uc *CreateRoomUseCase) validate(cmd CreateRoomCommand) error {
	if err := appcore.ValidateRequired("room.name", cmd.Name); err != nil {
		return err
	}
	if err := appcore.ValidateMaxLength("room.name", cmd.Name, maxNameLength); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("adminUser.firstName", cmd.Admin.FirstName); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("adminUser.lastName", cmd.Admin.LastName); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("adminUser.phone", cmd.Admin.Phone); err != nil {
		return err
	}
	return nil
}
