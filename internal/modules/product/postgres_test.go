package product

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productTestColumns = []string{
	"id", "name", "description", "price", "stock", "category",
	"image_url", "promotion_type", "discount", "created_at", "updated_at",
}

func newTestRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	log := zerolog.Nop()
	return NewPostgresRepository(db, &log), mock
}

func productRow(id int, name string, at time.Time) []driver.Value {
	return []driver.Value{id, name, "", "10.00", 1, "Other", "", "None", 0.0, at, at}
}

func TestGetAll_NewestFirst(t *testing.T) {
	repo, mock := newTestRepo(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(productTestColumns).
		AddRow(productRow(3, "C", base.Add(2*time.Hour))...).
		AddRow(productRow(2, "B", base.Add(time.Hour))...).
		AddRow(productRow(1, "A", base)...)
	mock.ExpectQuery(`SELECT (.+) FROM products ORDER BY created_at DESC`).WillReturnRows(rows)

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"C", "B", "A"}, []string{products[0].Name, products[1].Name, products[2].Name})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByPromotionType_FiltersOnColumn(t *testing.T) {
	repo, mock := newTestRepo(t)

	rows := sqlmock.NewRows(productTestColumns).
		AddRow(productRow(5, "Spotlight", time.Now())...)
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE promotion_type = \$1 ORDER BY created_at DESC`).
		WithArgs("Featured").
		WillReturnRows(rows)

	products, err := repo.GetByPromotionType(context.Background(), PromotionFeatured)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Spotlight", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReReadsInsertedRow(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO products (.+) RETURNING id`).
		WithArgs("Leather Satchel", "", 1200.50, 5, "Bags", "", "None", 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(productTestColumns).
			AddRow(42, "Leather Satchel", "", "1200.50", 5, "Bags", "", "None", 0.0, now, now))

	p, err := repo.Create(context.Background(), &CreateProduct{
		Name: "Leather Satchel", Price: 1200.50, Stock: 5, Category: "Bags", PromotionType: PromotionNone,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, p.ID)
	assert.Equal(t, 1200.50, p.Price)
	// Store-assigned timestamps come from the canonical re-read.
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_MissingAfterInsertIsFatal(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`INSERT INTO products (.+) RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	_, err := repo.Create(context.Background(), &CreateProduct{Name: "x", Price: 1, PromotionType: PromotionNone})
	assert.ErrorIs(t, err, errQueryFailed)
}

func TestUpdate_PartialSetClause(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	stock := 0
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(0, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(productTestColumns).AddRow(productRow(3, "Kept", now)...))

	p, err := repo.Update(context.Background(), &UpdateProduct{ID: 3, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "Kept", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MultipleColumnsKeepMapperOrder(t *testing.T) {
	repo, mock := newTestRepo(t)

	name := "Renamed"
	price := 25.0
	promo := PromotionClearance
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET name = $1, price = $2, promotion_type = $3, updated_at = NOW() WHERE id = $4`)).
		WithArgs("Renamed", 25.0, "Clearance", 8).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(productTestColumns).AddRow(productRow(8, "Renamed", time.Now())...))

	_, err := repo.Update(context.Background(), &UpdateProduct{ID: 8, Name: &name, Price: &price, PromotionType: &promo})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoFieldsDegradesToRead(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(productTestColumns).AddRow(productRow(4, "Untouched", time.Now())...))

	p, err := repo.Update(context.Background(), &UpdateProduct{ID: 4})
	require.NoError(t, err)
	assert.Equal(t, "Untouched", p.Name)
	// No UPDATE statement must have been executed.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	stock := 9
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(9, 77).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(productTestColumns))

	_, err := repo.Update(context.Background(), &UpdateProduct{ID: 77, Stock: &stock})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), 5))

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrNotFound)
}
