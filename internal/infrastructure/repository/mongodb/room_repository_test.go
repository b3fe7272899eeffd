package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/infrastructure/repository/mongodb"
	"github.com/secretnick/secretnick/tests/testutil"
)

func setupTestRoomRepository(t *testing.T) (*mongodb.MongoRoomRepository, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestMongoDB(t)
	return mongodb.NewMongoRoomRepository(db), db
}

func createTestRoom(t *testing.T, members int) *room.Room {
	t.Helper()

	r, err := room.NewRoom("Office Party", "Annual gift exchange", "500 UAH")
	require.NoError(t, err)

	_, err = r.AddAdmin(room.PersonalInfo{
		FirstName: "Ann", LastName: "Admin", Phone: "+380501112233",
	}, []room.Wish{{Name: "Coffee beans", InfoLink: "https://example.com/beans"}})
	require.NoError(t, err)

	names := []string{"Bob", "Carol", "Dave"}
	require.LessOrEqual(t, members, len(names))
	for i := range members {
		_, err = r.AddUser(room.PersonalInfo{
			FirstName: names[i], LastName: "Tester", Phone: "+380671112233",
		}, nil)
		require.NoError(t, err)
	}
	return r
}

func TestMongoRoomRepository_Save_And_GetByUserCode(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 1)
	require.NoError(t, repo.Save(ctx, rm))

	loaded, err := repo.GetByUserCode(ctx, rm.Admin().AuthCode())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, rm.ID(), loaded.ID())
	assert.Equal(t, rm.Name(), loaded.Name())
	assert.Equal(t, rm.InvitationCode(), loaded.InvitationCode())
	assert.Len(t, loaded.Users(), 2)
	assert.Equal(t, 0, loaded.Version())

	admin := loaded.Admin()
	require.NotNil(t, admin)
	assert.Equal(t, "Ann", admin.FirstName())
	assert.Len(t, admin.Wishlist(), 1)
	assert.Equal(t, "Coffee beans", admin.Wishlist()[0].Name)
}

func TestMongoRoomRepository_GetByUserCode_NotFound(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	_, err := repo.GetByUserCode(ctx, "no-such-code")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoRoomRepository_GetByInvitationCode(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 0)
	require.NoError(t, repo.Save(ctx, rm))

	loaded, err := repo.GetByInvitationCode(ctx, rm.InvitationCode())
	require.NoError(t, err)
	assert.Equal(t, rm.ID(), loaded.ID())

	_, err = repo.GetByInvitationCode(ctx, "no-such-invitation")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoRoomRepository_Save_Duplicate(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 0)
	require.NoError(t, repo.Save(ctx, rm))

	err := repo.Save(ctx, rm)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestMongoRoomRepository_Update_RemovesUser(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 2)
	require.NoError(t, repo.Save(ctx, rm))

	loaded, err := repo.GetByUserCode(ctx, rm.Admin().AuthCode())
	require.NoError(t, err)

	target := loaded.Users()[1]
	require.NoError(t, loaded.RemoveUser(target.ID()))
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.GetByUserCode(ctx, rm.Admin().AuthCode())
	require.NoError(t, err)
	assert.Len(t, reloaded.Users(), 2)
	_, found := reloaded.FindUserByID(target.ID())
	assert.False(t, found)
	assert.Equal(t, 1, reloaded.Version())
}

func TestMongoRoomRepository_Update_StaleVersion(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 2)
	require.NoError(t, repo.Save(ctx, rm))

	// Two sessions load the same aggregate state.
	first, err := repo.GetByUserCode(ctx, rm.Admin().AuthCode())
	require.NoError(t, err)
	second, err := repo.GetByUserCode(ctx, rm.Admin().AuthCode())
	require.NoError(t, err)

	require.NoError(t, first.RemoveUser(first.Users()[1].ID()))
	require.NoError(t, repo.Update(ctx, first))

	// The second session still carries the old version and must lose.
	require.NoError(t, second.RemoveUser(second.Users()[2].ID()))
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
}

func TestMongoRoomRepository_Update_MissingRoom(t *testing.T) {
	repo, _ := setupTestRoomRepository(t)
	ctx := context.Background()

	rm := createTestRoom(t, 0)
	err := repo.Update(ctx, rm)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMongoRoomRepository_SyncsUserDirectory(t *testing.T) {
	repo, db := setupTestRoomRepository(t)
	users := mongodb.NewMongoUserReadRepository(db)
	ctx := context.Background()

	rm := createTestRoom(t, 1)
	require.NoError(t, repo.Save(ctx, rm))

	member := rm.Users()[1]
	found, err := users.GetByID(ctx, member.ID())
	require.NoError(t, err)
	assert.Equal(t, rm.ID(), found.RoomID())
	assert.Equal(t, member.AuthCode(), found.AuthCode())

	// Removing the member from the room must also drop the directory entry.
	require.NoError(t, rm.RemoveUser(member.ID()))
	require.NoError(t, repo.Update(ctx, rm))

	_, err = users.GetByID(ctx, member.ID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
