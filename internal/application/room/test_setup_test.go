package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// fakeRoomStore is an in-memory Repository for use case tests.
type fakeRoomStore struct {
	rooms     map[uuid.UUID]*room.Room
	saveErr   error
	updateErr error
	saves     int
	updates   int
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[uuid.UUID]*room.Room)}
}

func (s *fakeRoomStore) put(r *room.Room) {
	s.rooms[r.ID()] = r
}

func (s *fakeRoomStore) Save(_ context.Context, r *room.Room) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.rooms[r.ID()] = r
	s.saves++
	return nil
}

func (s *fakeRoomStore) GetByUserCode(_ context.Context, userCode string) (*room.Room, error) {
	for _, r := range s.rooms {
		if _, ok := r.FindUserByCode(userCode); ok {
			return r, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *fakeRoomStore) Update(_ context.Context, r *room.Room) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.rooms[r.ID()] = r
	s.updates++
	return nil
}

func testContext() context.Context {
	return context.Background()
}

func testPersonalInfo(first string) room.PersonalInfo {
	return room.PersonalInfo{
		FirstName:    first,
		LastName:     "Tester",
		Phone:        "+380501112233",
		DeliveryInfo: "Main Office, desk 42",
	}
}

// createTestRoom builds an open room with an admin and the given number of
// extra members.
func createTestRoom(t *testing.T, members int) *room.Room {
	t.Helper()

	r, err := room.NewRoom("Office Party", "Annual gift exchange", "500 UAH")
	require.NoError(t, err)
	_, err = r.AddAdmin(testPersonalInfo("Ann"), nil)
	require.NoError(t, err)

	names := []string{"Bob", "Carol", "Dave", "Erin", "Frank"}
	require.LessOrEqual(t, members, len(names))
	for i := range members {
		_, err = r.AddUser(testPersonalInfo(names[i]), nil)
		require.NoError(t, err)
	}
	return r
}

// asClosed rebuilds the room with its closure timestamp set, keeping
// identities and auth codes intact.
func asClosed(r *room.Room) *room.Room {
	closedOn := time.Now().Add(-time.Hour)
	return room.Reconstruct(
		r.ID(),
		r.Name(), r.Description(), r.Budget(), r.InvitationCode(),
		&closedOn,
		r.Users(),
		r.Version(),
		r.CreatedAt(), closedOn,
	)
}

// requireValidation asserts that err is a validation failure of the given
// kind on the given field.
func requireValidation(t *testing.T, err error, kind errs.Kind, field string) *errs.Validation {
	t.Helper()

	v, ok := errs.AsValidation(err)
	require.True(t, ok, "expected a typed validation error, got %v", err)
	require.Equal(t, kind, v.Kind)
	require.NotEmpty(t, v.Fields)
	require.Equal(t, field, v.Fields[0].Field)
	return v
}
