package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	Register(ctx context.Context, name, email, password, confirmPassword string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	CountUsers(ctx context.Context) (int, error)
	CountVerifiedUsers(ctx context.Context) (int, error)
}

// VerificationSender issues a verification code to a freshly registered
// account. Satisfied by the verification module's service.
type VerificationSender interface {
	SendCode(ctx context.Context, userID int, email, name string) error
}
