package product

import "time"

// PromotionType controls a product's merchandising treatment. Only
// Flash Deals carries a meaningful discount.
type PromotionType string

const (
	PromotionNone       PromotionType = "None"
	PromotionTopSellers PromotionType = "Top Sellers"
	PromotionFeatured   PromotionType = "Featured"
	PromotionFlashDeals PromotionType = "Flash Deals"
	PromotionNewArrival PromotionType = "New Arrival"
	PromotionClearance  PromotionType = "Clearance"
)

// Product is the canonical persisted record. An empty ImageURL means the
// product has no image.
type Product struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Price         float64       `json:"price"`
	Stock         int           `json:"stock"`
	Category      string        `json:"category"`
	ImageURL      string        `json:"imageUrl"`
	PromotionType PromotionType `json:"promotionType"`
	Discount      float64       `json:"discount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateProduct holds the fully resolved fields for an insert. ID and the
// timestamps are assigned by the store.
type CreateProduct struct {
	Name          string
	Description   string
	Price         float64
	Stock         int
	Category      string
	ImageURL      string
	PromotionType PromotionType
	Discount      float64
}

// UpdateProduct is a partial update: nil means "leave unchanged". The
// repository emits SET clauses only for the fields that are present.
type UpdateProduct struct {
	ID            int
	Name          *string
	Description   *string
	Price         *float64
	Stock         *int
	Category      *string
	ImageURL      *string
	PromotionType *PromotionType
	Discount      *float64
}
