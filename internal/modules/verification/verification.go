package verification

import (
	"errors"
	"time"
)

// Code is one issued verification code. A user may have several
// outstanding codes; verification always checks the most recently issued
// matching one.
type Code struct {
	ID        int
	UserID    int
	Code      string
	ExpiresAt time.Time
	IsUsed    bool
}

// codeTTL is how long an issued code stays valid.
const codeTTL = 10 * time.Minute

// ErrCodeInvalid covers every rejection: unknown, expired or already used
// codes all look the same to the caller.
var ErrCodeInvalid = errors.New("invalid, used, or expired verification code")
