package product

import "context"

// Repository defines product storage. Every call owns its own connection
// scope for its own duration; nothing is held across calls.
type Repository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	GetByPromotionType(ctx context.Context, promo PromotionType) ([]*Product, error)
	Create(ctx context.Context, p *CreateProduct) (*Product, error)
	Update(ctx context.Context, u *UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}
