package room

import (
	"github.com/secretnick/secretnick/internal/domain/room"
)

// CreateRoomCommand creates a room together with its admin user.
type CreateRoomCommand struct {
	Name        string
	Description string
	Budget      string

	Admin         room.PersonalInfo
	AdminWishlist []room.Wish
}

// CommandName returns the command name.
func (c CreateRoomCommand) CommandName() string { return "CreateRoom" }

// UpdateRoomCommand changes the descriptive fields of an open room.
type UpdateRoomCommand struct {
	UserCode    string
	Name        string
	Description string
	Budget      string
}

// CommandName returns the command name.
func (c UpdateRoomCommand) CommandName() string { return "UpdateRoom" }

// CloseRoomCommand closes the room for the draw.
type CloseRoomCommand struct {
	UserCode string
}

// CommandName returns the command name.
func (c CloseRoomCommand) CommandName() string { return "CloseRoom" }
