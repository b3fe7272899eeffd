package room

import (
	"time"

	"github.com/secretnick/secretnick/internal/domain/errs"
	"github.com/secretnick/secretnick/internal/domain/uuid"
)

// PersonalInfo groups the personal fields a participant registers with.
type PersonalInfo struct {
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	DeliveryInfo string
}

// Wish is a single wishlist entry.
type Wish struct {
	Name     string
	InfoLink string
}

// User is a room-scoped membership record. Its room reference must always
// point to the room that holds it in its membership collection; the command
// pipeline treats a mismatch as a validation failure, not something to fix.
type User struct {
	id           uuid.UUID
	roomID       uuid.UUID
	isAdmin      bool
	authCode     string
	firstName    string
	lastName     string
	phone        string
	email        string
	deliveryInfo string
	wishlist     []Wish
	createdAt    time.Time
	updatedAt    time.Time
}

func newUser(roomID uuid.UUID, isAdmin bool, info PersonalInfo, wishlist []Wish) (*User, error) {
	if roomID.IsZero() {
		return nil, errs.ErrInvalidInput
	}
	if info.FirstName == "" || info.LastName == "" {
		return nil, errs.ErrInvalidInput
	}
	if info.Phone == "" {
		return nil, errs.ErrInvalidInput
	}
	if wishlist == nil {
		wishlist = make([]Wish, 0)
	}

	now := time.Now()
	return &User{
		id:           uuid.NewUUID(),
		roomID:       roomID,
		isAdmin:      isAdmin,
		authCode:     uuid.NewUUID().String(),
		firstName:    info.FirstName,
		lastName:     info.LastName,
		phone:        info.Phone,
		email:        info.Email,
		deliveryInfo: info.DeliveryInfo,
		wishlist:     wishlist,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser restores a User from storage without validation.
func ReconstructUser(
	id, roomID uuid.UUID,
	isAdmin bool,
	authCode string,
	info PersonalInfo,
	wishlist []Wish,
	createdAt, updatedAt time.Time,
) *User {
	if wishlist == nil {
		wishlist = make([]Wish, 0)
	}
	return &User{
		id:           id,
		roomID:       roomID,
		isAdmin:      isAdmin,
		authCode:     authCode,
		firstName:    info.FirstName,
		lastName:     info.LastName,
		phone:        info.Phone,
		email:        info.Email,
		deliveryInfo: info.DeliveryInfo,
		wishlist:     wishlist,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// UpdateProfile replaces the user's personal fields.
func (u *User) UpdateProfile(info PersonalInfo) error {
	if info.FirstName == "" || info.LastName == "" || info.Phone == "" {
		return errs.ErrInvalidInput
	}
	u.firstName = info.FirstName
	u.lastName = info.LastName
	u.phone = info.Phone
	u.email = info.Email
	u.deliveryInfo = info.DeliveryInfo
	u.updatedAt = time.Now()
	return nil
}

// UpdateWishlist replaces the user's wishlist.
func (u *User) UpdateWishlist(wishlist []Wish) {
	if wishlist == nil {
		wishlist = make([]Wish, 0)
	}
	u.wishlist = wishlist
	u.updatedAt = time.Now()
}

// ID returns the user ID.
func (u *User) ID() uuid.UUID { return u.id }

// RoomID returns the ID of the room this user belongs to.
func (u *User) RoomID() uuid.UUID { return u.roomID }

// IsAdmin reports whether this user administers the room.
func (u *User) IsAdmin() bool { return u.isAdmin }

// AuthCode returns the opaque per-room authorization code.
func (u *User) AuthCode() string { return u.authCode }

// FirstName returns the first name.
func (u *User) FirstName() string { return u.firstName }

// LastName returns the last name.
func (u *User) LastName() string { return u.lastName }

// Phone returns the phone number.
func (u *User) Phone() string { return u.phone }

// Email returns the email address, possibly empty.
func (u *User) Email() string { return u.email }

// DeliveryInfo returns the gift delivery details.
func (u *User) DeliveryInfo() string { return u.deliveryInfo }

// Wishlist returns the wishlist entries.
func (u *User) Wishlist() []Wish { return u.wishlist }

// CreatedAt returns the creation time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last modification time.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
