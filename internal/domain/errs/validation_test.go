package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/errs"
)

func TestValidation_Error(t *testing.T) {
	err := errs.NewBadRequest("userCode", "user is not an admin")

	assert.Equal(t, "bad_request: userCode: user is not an admin", err.Error())
}

func TestValidation_Kinds(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		notFound   bool
		badRequest bool
		conflict   bool
	}{
		{"not found", errs.NewNotFound("userId", "user not found"), true, false, false},
		{"bad request", errs.NewBadRequest("userId", "cannot delete admin user"), false, true, false},
		{"conflict", errs.NewConflict("room.version", "room was modified concurrently"), false, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.notFound, errs.IsNotFound(tc.err))
			assert.Equal(t, tc.badRequest, errs.IsBadRequest(tc.err))
			assert.Equal(t, tc.conflict, errs.IsConflict(tc.err))
		})
	}
}

func TestValidation_MatchesSentinels(t *testing.T) {
	assert.ErrorIs(t, errs.NewNotFound("userCode", "user not found"), errs.ErrNotFound)
	assert.ErrorIs(t, errs.NewConflict("room.version", "stale"), errs.ErrConcurrentModification)
	assert.ErrorIs(t, errs.NewBadRequest("userId", "nope"), errs.ErrInvalidInput)
}

func TestAsValidation_Wrapped(t *testing.T) {
	inner := errs.NewNotFound("userId", "user not found")
	wrapped := fmt.Errorf("delete user: %w", inner)

	v, ok := errs.AsValidation(wrapped)
	require.True(t, ok)
	assert.Equal(t, errs.KindNotFound, v.Kind)
	require.Len(t, v.Fields, 1)
	assert.Equal(t, "userId", v.Fields[0].Field)
}

func TestAsValidation_PlainError(t *testing.T) {
	_, ok := errs.AsValidation(errors.New("boom"))
	assert.False(t, ok)
}
