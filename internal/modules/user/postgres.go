package user

import (
	"context"
	"database/sql"
	"errors"

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

// CreateUser inserts the account after an explicit duplicate-email check
// and fills in the store-assigned id.
func (r *postgresRepo) CreateUser(ctx context.Context, u *User) error {
	var existing string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE email = $1`, u.Email).Scan(&existing)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.Error().Err(err).Str("email", u.Email).Msg("checking existing user")
		return errQueryFailed
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		u.FullName, u.Email, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		r.log.Error().Err(err).Str("email", u.Email).Msg("creating user")
		return errQueryFailed
	}
	return nil
}

func (r *postgresRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, email, password_hash, is_verified, created_at
		FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.IsVerified, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Str("email", email).Msg("fetching user")
		return nil, errQueryFailed
	}
	return u, nil
}

func (r *postgresRepo) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, email, is_verified, created_at
		FROM users ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error().Err(err).Msg("listing users")
		return nil, errQueryFailed
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.IsVerified, &u.CreatedAt); err != nil {
			r.log.Error().Err(err).Msg("scanning user")
			return nil, errQueryFailed
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Msg("iterating users")
		return nil, errQueryFailed
	}
	return users, nil
}

func (r *postgresRepo) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *postgresRepo) CountVerifiedUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE is_verified`)
}

func (r *postgresRepo) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		r.log.Error().Err(err).Msg("counting users")
		return 0, errQueryFailed
	}
	return n, nil
}
