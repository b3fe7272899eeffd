package user

import (
	"context"
	"errors"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/event"
	"github.com/secretnick/secretnick/internal/domain/room"
)

// UpdateWishlistUseCase replaces the calling user's wishlist. Wishlists can
// be edited only while the room is open.
type UpdateWishlistUseCase struct {
	appcore.BaseUseCase

	rooms RoomRepository
	opts  options
}

// NewUpdateWishlistUseCase creates a new UpdateWishlistUseCase.
func NewUpdateWishlistUseCase(rooms RoomRepository, opts ...Option) *UpdateWishlistUseCase {
	return &UpdateWishlistUseCase{
		rooms: rooms,
		opts:  newOptions(opts),
	}
}

// Execute replaces the wishlist and returns the updated user.
func (uc *UpdateWishlistUseCase) Execute(ctx context.Context, cmd UpdateWishlistCommand) (UserResult, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return UserResult{}, uc.WrapError("validate context", err)
	}
	if err := appcore.ValidateRequired(fieldUserCode, cmd.UserCode); err != nil {
		return UserResult{}, err
	}

	rm, err := uc.rooms.GetByUserCode(ctx, cmd.UserCode)
	if err != nil {
		return UserResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}

	u, ok := rm.FindUserByCode(cmd.UserCode)
	if !ok {
		return UserResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}

	if rm.IsClosed() {
		return UserResult{}, errs.NewBadRequest(fieldClosedOn, "room is already closed")
	}

	u.UpdateWishlist(cmd.Wishlist)

	if err = uc.rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, errs.ErrConcurrentModification) {
			return UserResult{}, errs.NewConflict(fieldVersion, "room was modified concurrently")
		}
		return UserResult{}, errs.NewBadRequest("room", err.Error())
	}

	uc.opts.publish(ctx, room.NewWishlistUpdated(
		rm.ID(), u.ID(), len(u.Wishlist()),
		event.NewMetadata(u.ID().String(), ""),
	))

	return UserResult{User: u}, nil
}
