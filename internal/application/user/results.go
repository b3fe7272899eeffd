package user

import "github.com/secretnick/secretnick/internal/domain/room"

// RoomResult carries the room aggregate returned by membership commands.
type RoomResult struct {
	Room *room.Room
}

// UserResult carries a single user record.
type UserResult struct {
	User *room.User
}
