// Package mongodb provides MongoDB infrastructure components including index management.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names as constants for consistency.
const (
	CollectionRooms        = "rooms"
	CollectionUsers        = "users"
	CollectionRoomActivity = "room_activity"
)

// IndexDefinition describes a MongoDB index to be created.
type IndexDefinition struct {
	Collection string
	Keys       bson.D
	Options    *options.IndexOptionsBuilder
}

// CreateAllIndexes creates all necessary indexes for the application.
// This function is idempotent - calling it multiple times is safe.
func CreateAllIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := GetAllIndexDefinitions()

	for _, idx := range indexes {
		coll := db.Collection(idx.Collection)
		model := mongo.IndexModel{
			Keys:    idx.Keys,
			Options: idx.Options,
		}

		_, err := coll.Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("failed to create index on collection %s: %w", idx.Collection, err)
		}
	}

	return nil
}

// GetAllIndexDefinitions returns all index definitions for all collections.
func GetAllIndexDefinitions() []IndexDefinition {
	var indexes []IndexDefinition

	indexes = append(indexes, GetRoomIndexes()...)
	indexes = append(indexes, GetUserIndexes()...)
	indexes = append(indexes, GetRoomActivityIndexes()...)

	return indexes
}

// GetRoomIndexes returns index definitions for the rooms collection.
func GetRoomIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Primary key - unique room ID
			Collection: CollectionRooms,
			Keys:       bson.D{{Key: "room_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_rooms_id_unique"),
		},
		{
			// Unique index for the invitation code users join with
			Collection: CollectionRooms,
			Keys:       bson.D{{Key: "invitation_code", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_rooms_invitation_unique"),
		},
		{
			// Unique index for resolving a room by a member's auth code
			Collection: CollectionRooms,
			Keys:       bson.D{{Key: "users.auth_code", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_rooms_user_auth_code_unique"),
		},
	}
}

// GetUserIndexes returns index definitions for the users directory collection.
func GetUserIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Primary key - unique user ID
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_id_unique"),
		},
		{
			// Unique index for per-room auth codes
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "auth_code", Value: 1}},
			Options:    options.Index().SetUnique(true).SetName("idx_users_auth_code_unique"),
		},
		{
			// Index for listing a room's users
			Collection: CollectionUsers,
			Keys:       bson.D{{Key: "room_id", Value: 1}},
			Options:    options.Index().SetName("idx_users_room"),
		},
	}
}

// GetRoomActivityIndexes returns index definitions for the room_activity collection.
func GetRoomActivityIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			// Main index for loading a room's activity feed
			Collection: CollectionRoomActivity,
			Keys:       bson.D{{Key: "room_id", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options:    options.Index().SetName("idx_room_activity_room_time"),
		},
		{
			// Index for filtering by event type
			Collection: CollectionRoomActivity,
			Keys:       bson.D{{Key: "event_type", Value: 1}, {Key: "occurred_at", Value: -1}},
			Options:    options.Index().SetName("idx_room_activity_type_time"),
		},
		{
			// Index for cleanup operations (deleting old records)
			Collection: CollectionRoomActivity,
			Keys:       bson.D{{Key: "occurred_at", Value: 1}},
			Options:    options.Index().SetName("idx_room_activity_cleanup"),
		},
	}
}

// EnsureIndexes is an alias for CreateAllIndexes for semantic clarity.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return CreateAllIndexes(ctx, db)
}
