package user

import (
	"github.com/secretnick/secretnick/internal/domain/room"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// DeleteUserCommand removes a participant from the admin's room.
type DeleteUserCommand struct {
	// UserCode is the opaque per-room authorization code of the requesting admin.
	UserCode string
	// UserID is the global identifier of the user to delete.
	UserID uuid.UUID
}

// CommandName returns the command name.
func (c DeleteUserCommand) CommandName() string { return "DeleteUser" }

// JoinRoomCommand adds a participant to an open room via invitation code.
type JoinRoomCommand struct {
	InvitationCode string
	Info           room.PersonalInfo
	Wishlist       []room.Wish
}

// CommandName returns the command name.
func (c JoinRoomCommand) CommandName() string { return "JoinRoom" }

// UpdateWishlistCommand replaces the calling user's wishlist.
type UpdateWishlistCommand struct {
	UserCode string
	Wishlist []room.Wish
}

// CommandName returns the command name.
func (c UpdateWishlistCommand) CommandName() string { return "UpdateWishlist" }
