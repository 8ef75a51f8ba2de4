package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveCode(ctx context.Context, userID int, code string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, code, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) ConsumeCode(ctx context.Context, userID int, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

// MockMailer is a mock implementation of email.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}

func TestSendCode(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	svc := NewService(repo, mailer)

	var savedCode string
	repo.On("SaveCode", mock.Anything, 4, mock.MatchedBy(func(code string) bool {
		savedCode = code
		return isSixDigits(code)
	}), mock.MatchedBy(func(at time.Time) bool {
		// Expiry lands ten minutes out, give or take test slack.
		d := time.Until(at)
		return d > 9*time.Minute && d <= 10*time.Minute
	})).Return(nil).Once()
	mailer.On("SendVerificationCode", mock.Anything, "ana@example.com", "Ana", mock.MatchedBy(func(code string) bool {
		return code == savedCode
	})).Return(nil).Once()

	require.NoError(t, svc.SendCode(context.Background(), 4, "ana@example.com", "Ana"))
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSendCode_SaveFailureSkipsEmail(t *testing.T) {
	repo := new(MockRepository)
	mailer := new(MockMailer)
	svc := NewService(repo, mailer)

	repo.On("SaveCode", mock.Anything, 4, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	require.Error(t, svc.SendCode(context.Background(), 4, "ana@example.com", "Ana"))
	mailer.AssertNotCalled(t, "SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.True(t, isSixDigits(code), "code %q", code)
		seen[code] = true
	}
	// 100 draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}
