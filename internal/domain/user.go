package domain

import "time"

// User represents a domain user object
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(id, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return NewInvalidRequestError("email is required")
	}
	if u.PasswordHash == "" {
		return NewInvalidRequestError("password hash is required")
	}
	return nil
}
