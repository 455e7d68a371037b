package domain

import "time"

// UserStatus represents lifecycle states for a marketplace account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is a marketplace account. Buyers, sellers and boosters share it.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the session identity for the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Email: u.Email}
}
