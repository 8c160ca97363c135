package auth

import "time"

// Account represents a registered account. PasswordHash is never rendered.
type Account struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Credentials carry a login or registration attempt for the duration of one call.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the identity decoded from a valid token, scoped to one request.
type Session struct {
	AccountID int64
	NotBefore time.Time
	ExpiresAt time.Time
}
