package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// productColumns is the column list every product SELECT uses, in the
// order scanProduct expects.
const productColumns = "id, name, description, price, stock, category, image_url, promotion_type, discount, created_at, updated_at"

// scanProduct maps one row onto a Product. The price column is a DECIMAL
// and arrives as text; it is parsed exactly and exposed as a float64.
func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var (
		price     string
		promotion string
		createdAt time.Time
		updatedAt time.Time
	)
	err := scan(&p.ID, &p.Name, &p.Description, &price, &p.Stock, &p.Category,
		&p.ImageURL, &promotion, &p.Discount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	p.Price = d.InexactFloat64()
	p.PromotionType = PromotionType(promotion)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}

// updateColumns translates a partial update into ordered (column, value)
// pairs, emitting nothing for absent fields. An empty result means there
// is nothing to write and the caller should fall back to a plain read.
func updateColumns(u *UpdateProduct) (cols []string, vals []interface{}) {
	if u.Name != nil {
		cols, vals = append(cols, "name"), append(vals, *u.Name)
	}
	if u.Description != nil {
		cols, vals = append(cols, "description"), append(vals, *u.Description)
	}
	if u.Price != nil {
		cols, vals = append(cols, "price"), append(vals, *u.Price)
	}
	if u.Stock != nil {
		cols, vals = append(cols, "stock"), append(vals, *u.Stock)
	}
	if u.Category != nil {
		cols, vals = append(cols, "category"), append(vals, *u.Category)
	}
	if u.ImageURL != nil {
		cols, vals = append(cols, "image_url"), append(vals, *u.ImageURL)
	}
	if u.PromotionType != nil {
		cols, vals = append(cols, "promotion_type"), append(vals, string(*u.PromotionType))
	}
	if u.Discount != nil {
		cols, vals = append(cols, "discount"), append(vals, *u.Discount)
	}
	return cols, vals
}
