package user

import (
	"context"

	"github.com/secretnick/secretnick/internal/application/appcore"
	"github.com/secretnick/secretnick/internal/domain/errs"
)

// GetUserUseCase resolves the calling user by their auth code.
type GetUserUseCase struct {
	appcore.BaseUseCase

	rooms RoomRepository
}

// NewGetUserUseCase creates a new GetUserUseCase.
func NewGetUserUseCase(rooms RoomRepository) *GetUserUseCase {
	return &GetUserUseCase{rooms: rooms}
}

// Execute returns the user owning the auth code.
func (uc *GetUserUseCase) Execute(ctx context.Context, query GetUserQuery) (UserResult, error) {
	if err := uc.ValidateContext(ctx); err != nil {
		return UserResult{}, uc.WrapError("validate context", err)
	}
	if err := appcore.ValidateRequired(fieldUserCode, query.UserCode); err != nil {
		return UserResult{}, err
	}

	rm, err := uc.rooms.GetByUserCode(ctx, query.UserCode)
	if err != nil {
		return UserResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}

	u, ok := rm.FindUserByCode(query.UserCode)
	if !ok {
		return UserResult{}, errs.NewNotFound(fieldUserCode, "user not found")
	}

	return UserResult{User: u}, nil
}
