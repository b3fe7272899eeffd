package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// fakeRoomStore is an in-memory RoomRepository for use case tests.
type fakeRoomStore struct {
	rooms     map[uuid.UUID]*room.Room
	updateErr error
	updates   int
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: make(map[uuid.UUID]*room.Room)}
}

func (s *fakeRoomStore) put(r *room.Room) {
	s.rooms[r.ID()] = r
}

func (s *fakeRoomStore) GetByUserCode(_ context.Context, userCode string) (*room.Room, error) {
	for _, r := range s.rooms {
		if _, ok := r.FindUserByCode(userCode); ok {
			return r, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *fakeRoomStore) GetByInvitationCode(_ context.Context, invitationCode string) (*room.Room, error) {
	for _, r := range s.rooms {
		if r.InvitationCode() == invitationCode {
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

// fakeUserDirectory is the global user directory backed by the fake store,
// with an overlay for records that intentionally disagree with the aggregates.
type fakeUserDirectory struct {
	store   *fakeRoomStore
	overlay map[uuid.UUID]*room.User
}

func newFakeUserDirectory(store *fakeRoomStore) *fakeUserDirectory {
	return &fakeUserDirectory{store: store, overlay: make(map[uuid.UUID]*room.User)}
}

func (d *fakeUserDirectory) GetByID(_ context.Context, userID uuid.UUID) (*room.User, error) {
	if u, ok := d.overlay[userID]; ok {
		return u, nil
	}
	for _, r := range d.store.rooms {
		if u, ok := r.FindUserByID(userID); ok {
			return u, nil
		}
	}
	return nil, errs.ErrNotFound
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
