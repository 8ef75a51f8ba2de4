package verification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

type postgresRepo struct {
	db  *sql.DB
	log *zerolog.Logger
}

func NewPostgresRepository(db *sql.DB, log *zerolog.Logger) Repository {
	return &postgresRepo{db: db, log: log}
}

var errQueryFailed = errors.New("database query failed")

func (r *postgresRepo) SaveCode(ctx context.Context, userID int, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)`, userID, code, expiresAt)
	if err != nil {
		r.log.Error().Err(err).Int("userId", userID).Msg("saving verification code")
		return errQueryFailed
	}
	return nil
}

func (r *postgresRepo) ConsumeCode(ctx context.Context, userID int, code string) error {
	var rec Code
	err := r.db.QueryRowContext(ctx, `
		SELECT id, expires_at, is_used FROM verification_codes
		WHERE user_id = $1 AND code = $2
		ORDER BY expires_at DESC LIMIT 1`, userID, code).
		Scan(&rec.ID, &rec.ExpiresAt, &rec.IsUsed)
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Info().Int("userId", userID).Msg("verification failed: no matching code")
		return ErrCodeInvalid
	}
	if err != nil {
		r.log.Error().Err(err).Int("userId", userID).Msg("looking up verification code")
		return errQueryFailed
	}

	if rec.ExpiresAt.Before(time.Now()) {
		r.log.Info().Int("codeId", rec.ID).Time("expiredAt", rec.ExpiresAt).Msg("verification failed: code expired")
		return ErrCodeInvalid
	}
	if rec.IsUsed {
		r.log.Info().Int("codeId", rec.ID).Msg("verification failed: code already used")
		return ErrCodeInvalid
	}

	// Consume the code and verify the user atomically.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Error().Err(err).Msg("starting verification transaction")
		return errQueryFailed
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE verification_codes SET is_used = TRUE WHERE id = $1`, rec.ID); err != nil {
		r.log.Error().Err(err).Int("codeId", rec.ID).Msg("marking code used")
		return errQueryFailed
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET is_verified = TRUE WHERE id = $1`, userID); err != nil {
		r.log.Error().Err(err).Int("userId", userID).Msg("marking user verified")
		return errQueryFailed
	}
	if err := tx.Commit(); err != nil {
		r.log.Error().Err(err).Msg("committing verification")
		return errQueryFailed
	}
	return nil
}
