package product

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mugna-shop/backend/internal/uploads"
)

// Service defines product business logic over the raw, stringly-typed
// multipart form the admin UI submits.
type Service interface {
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id int) (*Product, error)
	Featured(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, form Form) (*Product, error)
	Update(ctx context.Context, id int, form Form) (*Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// Upload is a file taken from the multipart request. A zero-length Data
// is treated everywhere as "no file supplied".
type Upload struct {
	Filename string
	Data     []byte
}

// Form carries the raw form fields. nil means the field was absent from
// the request, which matters for partial updates.
type Form struct {
	Name          *string
	Description   *string
	Price         *string
	Stock         *string
	Category      *string
	PromotionType *string
	Discount      *string
	Image         *Upload
	ImageURL      *string
}

// imageAction is the resolved three-way image intent of a request. The
// wire encoding (a file, plus an imageUrl field where the literal string
// "null" means clear) is disambiguated here once, before any write.
type imageActionKind int

const (
	imageUnchanged imageActionKind = iota // field absent: do not touch the column
	imageKeep                            // client passed a URL back: write it through
	imageRemove                          // literal "null": clear the image
	imageReplace                         // new non-empty upload wins over everything
)

type imageAction struct {
	kind   imageActionKind
	url    string  // for imageKeep
	upload *Upload // for imageReplace
}

func resolveImageAction(form Form) imageAction {
	if form.Image != nil && len(form.Image.Data) > 0 {
		return imageAction{kind: imageReplace, upload: form.Image}
	}
	if form.ImageURL != nil {
		if *form.ImageURL == "null" {
			return imageAction{kind: imageRemove}
		}
		return imageAction{kind: imageKeep, url: *form.ImageURL}
	}
	return imageAction{kind: imageUnchanged}
}

type service struct {
	repo   Repository
	images uploads.Store
}

// NewService creates a new product service.
func NewService(repo Repository, images uploads.Store) Service {
	return &service{repo: repo, images: images}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id int) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Featured(ctx context.Context) ([]*Product, error) {
	return s.repo.GetByPromotionType(ctx, PromotionFeatured)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Create parses and validates the form, stores the image if one was
// supplied, and inserts the record. A failed image write aborts the whole
// operation: a product never references an image that was not persisted.
func (s *service) Create(ctx context.Context, form Form) (*Product, error) {
	price, err := parseFloat(form.Price, "Price")
	if err != nil {
		return nil, err
	}
	stock, err := parseInt(form.Stock, "Stock")
	if err != nil {
		return nil, err
	}
	discount, err := parseOptionalFloat(form.Discount, "Discount")
	if err != nil {
		return nil, err
	}

	p := &CreateProduct{
		Name:          strOr(form.Name, ""),
		Description:   strOr(form.Description, ""),
		Price:         price,
		Stock:         stock,
		Category:      strOr(form.Category, "Other"),
		PromotionType: PromotionType(strOr(form.PromotionType, string(PromotionNone))),
		Discount:      discount,
	}
	if err := validateCreate(p); err != nil {
		return nil, err
	}

	if action := resolveImageAction(form); action.kind == imageReplace {
		url, err := s.images.Save(action.upload.Data, action.upload.Filename)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		p.ImageURL = url
	}

	return s.repo.Create(ctx, p)
}

// Update applies a partial update. Only the fields present in the form
// reach the repository; the image column follows the resolved three-way
// intent.
func (s *service) Update(ctx context.Context, id int, form Form) (*Product, error) {
	u := &UpdateProduct{ID: id, Name: form.Name, Description: form.Description, Category: form.Category}

	if form.Price != nil {
		price, err := parseFloat(form.Price, "Price")
		if err != nil {
			return nil, err
		}
		u.Price = &price
	}
	if form.Stock != nil {
		stock, err := parseInt(form.Stock, "Stock")
		if err != nil {
			return nil, err
		}
		u.Stock = &stock
	}
	if form.PromotionType != nil {
		promo := PromotionType(*form.PromotionType)
		u.PromotionType = &promo
	}
	if form.Discount != nil {
		discount, err := parseOptionalFloat(form.Discount, "Discount")
		if err != nil {
			return nil, err
		}
		u.Discount = &discount
	}
	if err := validateUpdate(u); err != nil {
		return nil, err
	}

	switch action := resolveImageAction(form); action.kind {
	case imageReplace:
		url, err := s.images.Save(action.upload.Data, action.upload.Filename)
		if err != nil {
			return nil, fmt.Errorf("store product image: %w", err)
		}
		u.ImageURL = &url
	case imageRemove:
		empty := ""
		u.ImageURL = &empty
	case imageKeep:
		url := action.url
		u.ImageURL = &url
	}

	return s.repo.Update(ctx, u)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func parseFloat(s *string, field string) (float64, error) {
	if s == nil || *s == "" {
		return 0, invalid(fmt.Sprintf("%s is required.", field))
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0, invalid(fmt.Sprintf("%s is not a valid number.", field))
	}
	return f, nil
}

func parseInt(s *string, field string) (int, error) {
	if s == nil || *s == "" {
		return 0, invalid(fmt.Sprintf("%s is required.", field))
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return 0, invalid(fmt.Sprintf("%s is not a valid integer.", field))
	}
	return n, nil
}

// parseOptionalFloat treats an absent or empty field as 0 but still
// rejects garbage text outright.
func parseOptionalFloat(s *string, field string) (float64, error) {
	if s == nil || *s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0, invalid(fmt.Sprintf("%s is not a valid number.", field))
	}
	return f, nil
}

func strOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
