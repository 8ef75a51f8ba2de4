package user

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo  Repository
	codes VerificationSender
	log   *zerolog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, codes VerificationSender, log *zerolog.Logger) Service {
	return &service{repo: repo, codes: codes, log: log}
}

// Register validates the signup payload, stores the account unverified and
// sends the initial verification code. A failed send does not roll the
// account back; the caller can hit /resend.
func (s *service) Register(ctx context.Context, name, email, password, confirmPassword string) (*User, error) {
	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, &ValidationError{Reason: "Missing required fields"}
	}
	if msg := passwordComplexityError(password); msg != "" {
		return nil, &ValidationError{Reason: msg}
	}
	if password != confirmPassword {
		return nil, &ValidationError{Reason: "Passwords do not match"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{FullName: name, Email: email, PasswordHash: string(hash)}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	if err := s.codes.SendCode(ctx, u.ID, u.Email, u.FullName); err != nil {
		s.log.Error().Err(err).Int("userId", u.ID).Msg("sending initial verification code")
	}
	return u, nil
}

// Login checks credentials and verification status. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.CountUsers(ctx)
}

func (s *service) CountVerifiedUsers(ctx context.Context) (int, error) {
	return s.repo.CountVerifiedUsers(ctx)
}

// passwordComplexityError returns the first violated complexity rule, or
// an empty string when the password passes.
func passwordComplexityError(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long."
	}
	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !upper:
		return "Password must contain at least 1 uppercase letter (A-Z)."
	case !lower:
		return "Password must contain at least 1 lowercase letter (a-z)."
	case !digit:
		return "Password must contain at least 1 number (0-9)."
	case !special:
		return "Password must contain at least 1 special character (!@#$...)."
	}
	return ""
}
