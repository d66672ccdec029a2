package domain

import "time"

// UserProfile mirrors the identity-provider account with app-local fields.
// The ID is the identity provider's user id.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is a verified caller resolved from a bearer credential. It lives
// for a single request and is never cached.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
