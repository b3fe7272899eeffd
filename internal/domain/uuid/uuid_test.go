package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/uuid"
)

func TestNewUUID(t *testing.T) {
	id := uuid.NewUUID()

	assert.NotEmpty(t, id)
	assert.False(t, id.IsZero())
	assert.Len(t, id.String(), 36)
}

func TestNewUUID_Uniqueness(t *testing.T) {
	id1 := uuid.NewUUID()
	id2 := uuid.NewUUID()

	assert.NotEqual(t, id1, id2, "Generated UUIDs should be unique")
}

func TestParseUUID_ValidUUID(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	id, err := uuid.ParseUUID(validUUID)

	require.NoError(t, err)
	assert.Equal(t, validUUID, id.String())
	assert.False(t, id.IsZero())
}

func TestParseUUID_InvalidUUID(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"invalid format", "not-a-uuid"},
		{"too short", "550e8400"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := uuid.ParseUUID(tc.input)

			require.Error(t, err)
			assert.True(t, id.IsZero())
		})
	}
}

func TestMustParseUUID_InvalidUUID_Panics(t *testing.T) {
	assert.Panics(t, func() {
		uuid.MustParseUUID("not-a-uuid")
	})
}
