package user

// GetUserQuery resolves the calling user by their auth code.
type GetUserQuery struct {
	UserCode string
}
