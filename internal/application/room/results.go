package room

import "github.com/secretnick/secretnick/internal/domain/room"

// Result carries the room aggregate returned by room operations.
type Result struct {
	Room *room.Room
}
