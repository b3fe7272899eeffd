package room

import (
	"context"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
)

// GetRoomUseCase resolves the room of the calling user by auth code.
type GetRoomUseCase struct {
	appcore.BaseUseCase

	rooms Repository
}

// NewGetRoomUseCase creates a new GetRoomUseCase.
func NewGetRoomUseCase(rooms Repository) *GetRoomUseCase {
	return &GetRoomUseCase{rooms: rooms}
}

// Execute returns the room whose membership contains the calling user.
func (uc *GetRoomUseCase) Execute(ctx context.Context, q GetRoomQuery) (Result, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return Result{}, uc.WrapError("validate context", err)
	}
	if err := appcore.ValidateRequired(fieldUserCode, q.UserCode); err != nil {
		return Result{}, err
	}

	rm, err := uc.rooms.GetByUserCode(ctx, q.UserCode)
	if err != nil {
		return Result{}, errs.NewNotFound(fieldUserCode, "room not found")
	}

	return Result{Room: rm}, nil
}
