package user

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

func requireValidation(t *testing.T, err error, kind errs.Kind, field string) *errs.Validation {
	t.Helper()
	v, ok := errs.AsValidation(err)
	require.True(t, ok, "expected a typed validation error, got %v", err)
	assert.Equal(t, kind, v.Kind)
	require.NotEmpty(t, v.Fields)
	assert.Equal(t, field, v.Fields[0].Field)
	return v
}

func TestDeleteUser_Success(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)
	admin := rm.Admin()
	member := rm.Users()[1]

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	result, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: admin.AuthCode(),
		UserID:   member.ID(),
	})

	require.NoError(t, err)
	require.NotNil(t, result.Room)
	assert.Len(t, result.Room.Users(), 1)
	_, found := result.Room.FindUserByID(member.ID())
	assert.False(t, found)
	assert.Equal(t, 1, store.updates)

	// The aggregate reachable through the admin's code no longer contains
	// the deleted user.
	persisted, err := store.GetByUserCode(testContext(), admin.AuthCode())
	require.NoError(t, err)
	_, found = persisted.FindUserByID(member.ID())
	assert.False(t, found)
}

func TestDeleteUser_SecondCallIsNotFound(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)
	admin := rm.Admin()
	member := rm.Users()[1]

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	cmd := DeleteUserCommand{UserCode: admin.AuthCode(), UserID: member.ID()}

	_, err := uc.Execute(testContext(), cmd)
	require.NoError(t, err)

	_, err = uc.Execute(testContext(), cmd)
	requireValidation(t, err, errs.KindNotFound, "userId")
}

func TestDeleteUser_UnknownUserCode(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: "no-such-code",
		UserID:   rm.Users()[1].ID(),
	})

	requireValidation(t, err, errs.KindNotFound, "userCode")
}

func TestDeleteUser_CallerNotAdmin(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 2)
	store.put(rm)
	member := rm.Users()[1]
	deletable := rm.Users()[2]

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: member.AuthCode(),
		UserID:   deletable.ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "userCode")
	assert.Equal(t, "user is not an admin", v.Fields[0].Message)
}

func TestDeleteUser_TargetUnknownGlobally(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   uuid.NewUUID(),
	})

	requireValidation(t, err, errs.KindNotFound, "userId")
}

func TestDeleteUser_TargetInDifferentRoom(t *testing.T) {
	store := newFakeRoomStore()
	adminRoom := createTestRoom(t, 1)
	otherRoom := createTestRoom(t, 1)
	store.put(adminRoom)
	store.put(otherRoom)
	stranger := otherRoom.Users()[1]

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: adminRoom.Admin().AuthCode(),
		UserID:   stranger.ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "userId")
	assert.Equal(t, "user does not belong to admin's room", v.Fields[0].Message)
}

func TestDeleteUser_DirectoryAggregateMismatch(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)
	directory := newFakeUserDirectory(store)

	// The directory claims this user belongs to the admin's room, but the
	// membership collection has no such user. The defensive re-check must be
	// live code, not an assumption.
	phantomID := uuid.NewUUID()
	directory.overlay[phantomID] = room.ReconstructUser(
		phantomID, rm.ID(), false, uuid.NewUUID().String(),
		testPersonalInfo("Ghost"), nil, time.Now(), time.Now(),
	)

	uc := NewDeleteUserUseCase(store, directory)
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   phantomID,
	})

	v := requireValidation(t, err, errs.KindNotFound, "userId")
	assert.Equal(t, "user not found in room", v.Fields[0].Message)
}

func TestDeleteUser_TargetIsAdmin(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   rm.Admin().ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "userId")
	assert.Equal(t, "cannot delete admin user", v.Fields[0].Message)
}

func TestDeleteUser_AdminTargetReportedBeforeClosedRoom(t *testing.T) {
	store := newFakeRoomStore()
	rm := asClosed(createTestRoom(t, 2))
	store.put(rm)

	// Step order is the contract: the admin-protection check precedes the
	// closed-room check even when both would fail.
	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   rm.Admin().ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "userId")
	assert.Equal(t, "cannot delete admin user", v.Fields[0].Message)
}

func TestDeleteUser_ClosedRoom(t *testing.T) {
	store := newFakeRoomStore()
	rm := asClosed(createTestRoom(t, 2))
	store.put(rm)
	member := rm.Users()[1]

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   member.ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "room.closedOn")
	assert.Equal(t, "room is already closed", v.Fields[0].Message)

	// Membership unchanged.
	assert.Len(t, rm.Users(), 3)
	assert.Zero(t, store.updates)
}

func TestDeleteUser_StoreRejection(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)
	store.updateErr = errors.New("write concern not satisfied")

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   rm.Users()[1].ID(),
	})

	v := requireValidation(t, err, errs.KindBadRequest, "userId")
	assert.Equal(t, "write concern not satisfied", v.Fields[0].Message)
}

func TestDeleteUser_ConcurrentModification(t *testing.T) {
	store := newFakeRoomStore()
	rm := createTestRoom(t, 1)
	store.put(rm)
	store.updateErr = errs.ErrConcurrentModification

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: rm.Admin().AuthCode(),
		UserID:   rm.Users()[1].ID(),
	})

	requireValidation(t, err, errs.KindConflict, "room.version")
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestDeleteUser_EmptyUserCode(t *testing.T) {
	store := newFakeRoomStore()

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: "",
		UserID:   uuid.NewUUID(),
	})

	requireValidation(t, err, errs.KindBadRequest, "userCode")
}

func TestDeleteUser_ZeroUserID(t *testing.T) {
	store := newFakeRoomStore()

	uc := NewDeleteUserUseCase(store, newFakeUserDirectory(store))
	_, err := uc.Execute(testContext(), DeleteUserCommand{
		UserCode: "some-code",
		UserID:   "",
	})

	requireValidation(t, err, errs.KindBadRequest, "userId")
}
