package room

// GetRoomQuery resolves the room of the calling user.
type GetRoomQuery struct {
	UserCode string
}
