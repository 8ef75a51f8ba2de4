package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type postgresRepo struct {
	db  *sql.DB
	log *zerolog.Logger
}

// NewPostgresRepository returns a Repository backed by the shared
// connection pool. Store-level failures are logged here with full detail
// and surfaced to callers as generic errors.
func NewPostgresRepository(db *sql.DB, log *zerolog.Logger) Repository {
	return &postgresRepo{db: db, log: log}
}

var errQueryFailed = errors.New("database query failed")

func (r *postgresRepo) GetAll(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		r.log.Error().Err(err).Msg("fetching all products")
		return nil, errQueryFailed
	}
	defer rows.Close()
	products, err := collectProducts(rows)
	if err != nil {
		r.log.Error().Err(err).Msg("scanning products")
		return nil, errQueryFailed
	}
	return products, nil
}

func (r *postgresRepo) GetByPromotionType(ctx context.Context, promo PromotionType) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE promotion_type = $1 ORDER BY created_at DESC`,
		string(promo))
	if err != nil {
		r.log.Error().Err(err).Str("promotion", string(promo)).Msg("fetching products by promotion")
		return nil, errQueryFailed
	}
	defer rows.Close()
	products, err := collectProducts(rows)
	if err != nil {
		r.log.Error().Err(err).Str("promotion", string(promo)).Msg("scanning products")
		return nil, errQueryFailed
	}
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("fetching product")
		return nil, errQueryFailed
	}
	return p, nil
}

// Create inserts the record and re-reads it by the generated id so that
// store-assigned defaults (timestamps) come back canonical.
func (r *postgresRepo) Create(ctx context.Context, p *CreateProduct) (*Product, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products
		  (name, description, price, stock, category, image_url, promotion_type, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		p.Name, p.Description, p.Price, p.Stock, p.Category,
		p.ImageURL, string(p.PromotionType), p.Discount).Scan(&id)
	if err != nil {
		r.log.Error().Err(err).Str("name", p.Name).Msg("creating product")
		return nil, errQueryFailed
	}

	created, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		r.log.Error().Int("id", id).Msg("product missing after insert")
		return nil, errQueryFailed
	}
	return created, err
}

// Update builds a SET clause from only the supplied fields, always touches
// updated_at, and returns the re-read row. With no fields supplied it
// degrades to a plain read.
func (r *postgresRepo) Update(ctx context.Context, u *UpdateProduct) (*Product, error) {
	cols, vals := updateColumns(u)
	if len(cols) == 0 {
		return r.GetByID(ctx, u.ID)
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	query := fmt.Sprintf("UPDATE products SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), len(cols)+1)

	if _, err := r.db.ExecContext(ctx, query, append(vals, u.ID)...); err != nil {
		r.log.Error().Err(err).Int("id", u.ID).Msg("updating product")
		return nil, errQueryFailed
	}
	return r.GetByID(ctx, u.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("deleting product")
		return errQueryFailed
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.log.Error().Err(err).Int("id", id).Msg("reading delete result")
		return errQueryFailed
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		r.log.Error().Err(err).Msg("counting products")
		return 0, errQueryFailed
	}
	return n, nil
}

func collectProducts(rows *sql.Rows) ([]*Product, error) {
	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}
