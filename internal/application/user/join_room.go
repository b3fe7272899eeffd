package user

import (
	"context"
	"errors"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
)

// JoinRoomUseCase adds a participant to an open room via its invitation code.
type JoinRoomUseCase struct {
	appcore.BaseUseCase

	rooms RoomRepository
	opts  options
}

// NewJoinRoomUseCase creates a new JoinRoomUseCase.
func NewJoinRoomUseCase(rooms RoomRepository, opts ...Option) *JoinRoomUseCase {
	return &JoinRoomUseCase{
		rooms: rooms,
		opts:  newOptions(opts),
	}
}

// Execute joins the room and returns the created user, auth code included.
func (uc *JoinRoomUseCase) Execute(ctx context.Context, cmd JoinRoomCommand) (UserResult, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return UserResult{}, uc.WrapError("validate context", err)
	}
	if err := uc.validate(cmd); err != nil {
		return UserResult{}, err
	}

	rm, err := uc.rooms.GetByInvitationCode(ctx, cmd.InvitationCode)
	if err != nil {
		return UserResult{}, errs.NewNotFound("invitationCode", "room not found")
	}

	if rm.IsClosed() {
		return UserResult{}, errs.NewBadRequest(fieldClosedOn, "room is already closed")
	}

	joined, err := rm.AddUser(cmd.Info, cmd.Wishlist)
	if err != nil {
		return UserResult{}, errs.NewBadRequest("user", "invalid user data")
	}

	if err = uc.rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return UserResult{}, errs.NewConflict(fieldVersion, "room was modified concurrently")
		}
		return UserResult{}, errs.NewBadRequest("room", err.Error())
	}

	uc.opts.publish(ctx, room.NewUserJoined(
		rm.ID(), joined.ID(), joined.CreatedAt(),
		event.NewMetadata(joined.ID().String(), ""),
	))

	return UserResult{User: joined}, nil
}

func (uc *JoinRoomUseCase) validate(cmd JoinRoomCommand) error {
	if err := appcore.ValidateRequired("invitationCode", cmd.InvitationCode); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("firstName", cmd.Info.FirstName); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("lastName", cmd.Info.LastName); err != nil {
		return err
	}
	if err := appcore.ValidateRequired("phone", cmd.Info.Phone); err != nil {
		return err
	}
	return nil
}
