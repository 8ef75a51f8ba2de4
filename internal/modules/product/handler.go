package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

// Handler exposes the storefront and admin product HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
	router.Get("/home/featured", h.featuredProducts)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Featured(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to retrieve featured products.")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found.")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"product": p})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), form)
	var verr *ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Reason)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add product")
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"product": p,
	})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	form, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.service.Update(r.Context(), id, form)
	var verr *ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Reason)
		return
	}
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Product ID %d not found.", id))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update product.")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Product ID %d updated successfully", id),
		"product": p,
	})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	err := h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Product with ID %d not found.", id))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format.")
		return 0, false
	}
	return id, true
}

// parseProductForm reads the multipart body into a Form, keeping track of
// which fields were actually present so updates stay partial.
func parseProductForm(r *http.Request) (Form, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return Form{}, fmt.Errorf("invalid multipart form")
	}

	form := Form{
		Name:          formField(r, "name"),
		Description:   formField(r, "description"),
		Price:         formField(r, "price"),
		Stock:         formField(r, "stock"),
		Category:      formField(r, "category"),
		PromotionType: formField(r, "promotionType"),
		Discount:      formField(r, "discount"),
		ImageURL:      formField(r, "imageUrl"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return Form{}, fmt.Errorf("could not read uploaded image")
		}
		form.Image = &Upload{Filename: header.Filename, Data: data}
	} else if !errors.Is(err, http.ErrMissingFile) {
		return Form{}, fmt.Errorf("invalid image upload")
	}
	return form, nil
}

func formField(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vals, ok := r.MultipartForm.Value[key]; ok && len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}
