package user

import (
	"errors"
	"time"
)

// User represents a customer account. Accounts start unverified and are
// flipped exactly once by the verification flow.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
}

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
)

// ValidationError marks a signup failure caused by the caller's input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
