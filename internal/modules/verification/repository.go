package verification

import (
	"context"
	"time"
)

// Repository defines verification code storage.
type Repository interface {
	SaveCode(ctx context.Context, userID int, code string, expiresAt time.Time) error
	// ConsumeCode validates the most recently issued matching code and, in
	// one transaction, marks it used and the user verified. Both commit or
	// neither does.
	ConsumeCode(ctx context.Context, userID int, code string) error
}
