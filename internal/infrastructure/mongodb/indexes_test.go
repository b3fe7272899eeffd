package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/secretnick/secretnick/internal/infrastructure/mongodb"
	"github.com/secretnick/secretnick/tests/testutil"
)

func getCollectionIndexes(ctx context.Context, t *testing.T, db *mongo.Database, collName string) []bson.M {
	t.Helper()

	cursor, err := db.Collection(collName).Indexes().List(ctx)
	require.NoError(t, err)

	var indexes []bson.M
	require.NoError(t, cursor.All(ctx, &indexes))
	return indexes
}

func TestCreateAllIndexes(t *testing.T) {
	db := testutil.SetupTestMongoDB(t)
	ctx := context.Background()

	err := mongodb.CreateAllIndexes(ctx, db)
	require.NoError(t, err)

	collections := []string{
		mongodb.CollectionRooms,
		mongodb.CollectionUsers,
		mongodb.CollectionRoomActivity,
	}

	for _, collName := range collections {
		indexes := getCollectionIndexes(ctx, t, db, collName)
		// At minimum the _id index plus at least one custom index.
		assert.GreaterOrEqual(t, len(indexes), 2, "collection %s should have indexes", collName)
	}
}

func TestCreateAllIndexes_Idempotent(t *testing.T) {
	db := testutil.SetupTestMongoDB(t)
	ctx := context.Background()

	require.NoError(t, mongodb.CreateAllIndexes(ctx, db))
	require.NoError(t, mongodb.CreateAllIndexes(ctx, db))
}

func TestGetAllIndexDefinitions(t *testing.T) {
	defs := mongodb.GetAllIndexDefinitions()
	require.NotEmpty(t, defs)

	unique := map[string]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.Collection)
		assert.NotEmpty(t, def.Keys)
		unique[def.Collection] = true
	}

	assert.True(t, unique[mongodb.CollectionRooms])
	assert.True(t, unique[mongodb.CollectionUsers])
	assert.True(t, unique[mongodb.CollectionRoomActivity])
}

func TestRoomIndexes_EnforceInvitationUniqueness(t *testing.T) {
	db := testutil.SetupTestMongoDB(t)
	ctx := context.Background()

	require.NoError(t, mongodb.CreateAllIndexes(ctx, db))

	coll := db.Collection(mongodb.CollectionRooms)
	_, err := coll.InsertOne(ctx, bson.M{"room_id": "r1", "invitation_code": "inv-1"})
	require.NoError(t, err)

	_, err = coll.InsertOne(ctx, bson.M{"room_id": "r2", "invitation_code": "inv-1"})
	require.Error(t, err)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}
