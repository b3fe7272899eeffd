package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
)

func TestCreateRoom_Success(t *testing.T) {
	store := newFakeRoomStore()
	uc := NewCreateRoomUseCase(store)

	res, err := uc.Execute(testContext(), CreateRoomCommand{
		Name:        "Office Party",
		Description: "Annual gift exchange",
		Budget:      "500 UAH",
		Admin:       testPersonalInfo("Ann"),
		AdminWishlist: []room.Wish{
			{Name: "Coffee beans", InfoLink: "https://example.com/beans"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Room)

	assert.Equal(t, "Office Party", res.Room.Name())
	assert.NotEmpty(t, res.Room.InvitationCode())
	assert.False(t, res.Room.IsClosed())
	assert.Equal(t, 1, store.saves)

	admin := res.Room.Admin()
	require.NotNil(t, admin)
	assert.Equal(t, "Ann", admin.FirstName())
	assert.NotEmpty(t, admin.AuthCode())
	assert.Len(t, admin.Wishlist(), 1)
}

func TestCreateRoom_EmptyName(t *testing.T) {
	uc := NewCreateRoomUseCase(newFakeRoomStore())

	_, err := uc.Execute(testContext(), CreateRoomCommand{
		Admin: testPersonalInfo("Ann"),
	})
	requireValidation(t, err, errs.KindBadRequest, "room.name")
}

func TestCreateRoom_MissingAdminName(t *testing.T) {
	uc := NewCreateRoomUseCase(newFakeRoomStore())

	admin := testPersonalInfo("Ann")
	admin.FirstName = ""
	_, err := uc.Execute(testContext(), CreateRoomCommand{
		Name:  "Office Party",
		Admin: admin,
	})
	requireValidation(t, err, errs.KindBadRequest, "adminUser.firstName")
}

func TestCreateRoom_StoreRejection(t *testing.T) {
	store := newFakeRoomStore()
	store.saveErr = assert.AnError
	uc := NewCreateRoomUseCase(store)

	_, err := uc.Execute(testContext(), CreateRoomCommand{
		Name:  "Office Party",
		Admin: testPersonalInfo("Ann"),
	})
	requireValidation(t, err, errs.KindBadRequest, "room")
}
