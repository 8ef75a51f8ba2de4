package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/mugna-shop/backend/internal/email"
)

// Service issues and validates verification codes.
type Service interface {
	SendCode(ctx context.Context, userID int, emailAddr, name string) error
	Verify(ctx context.Context, userID int, code string) error
}

type service struct {
	repo   Repository
	mailer email.Mailer
}

// NewService creates a new verification service.
func NewService(repo Repository, mailer email.Mailer) Service {
	return &service{repo: repo, mailer: mailer}
}

// SendCode issues a fresh 6-digit code valid for 10 minutes and emails it.
// Earlier codes stay outstanding.
func (s *service) SendCode(ctx context.Context, userID int, emailAddr, name string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	if err := s.repo.SaveCode(ctx, userID, code, time.Now().Add(codeTTL)); err != nil {
		return err
	}
	return s.mailer.SendVerificationCode(ctx, emailAddr, name, code)
}

func (s *service) Verify(ctx context.Context, userID int, code string) error {
	return s.repo.ConsumeCode(ctx, userID, code)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}
