package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adityarizkyr/go-shop-api/internal/catalog"
	"github.com/adityarizkyr/go-shop-api/internal/validate"
)

type ProductStore interface {
	Create(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	FindByID(ctx context.Context, id string) (catalog.Product, error)
	FindAll(ctx context.Context) ([]catalog.Product, error)
	Search(ctx context.Context, term string) ([]catalog.Product, error)
	Update(ctx context.Context, id string, in catalog.ProductInput) (catalog.Product, error)
	SoftDelete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Store ProductStore
	Cache *ProductCache // optional read-through cache for point lookups
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/api/products", h.list)
	r.Post("/api/products", h.create)
	r.Get("/api/products/{productId}", h.getByID)
	r.Put("/api/products/{productId}", h.update)
	r.Delete("/api/products/{productId}", h.delete)
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	term := r.URL.Query().Get("searchTerm")

	var (
		ps  []catalog.Product
		err error
	)
	if term != "" {
		ps, err = h.Store.Search(ctx, term)
	} else {
		ps, err = h.Store.FindAll(ctx)
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}

	msg := "Products fetched successfully!"
	if term != "" {
		msg = fmt.Sprintf("Products matching search term '%s' fetched successfully!", term)
	}
	respondOK(w, http.StatusOK, msg, ps)
}

func (h *ProductsHandler) getByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	id := chi.URLParam(r, "productId")
	if p, ok := h.Cache.Get(ctx, id); ok {
		respondOK(w, http.StatusOK, "Product fetched successfully!", p)
		return
	}

	p, err := h.Store.FindByID(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondErr(w, http.StatusBadRequest, "Product not found or deleted", nil)
		return
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}

	h.Cache.Set(ctx, p)
	respondOK(w, http.StatusOK, "Product fetched successfully!", p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if ferrs := validate.Struct(in); ferrs != nil {
		respondErr(w, http.StatusBadRequest, "Validation failed", ferrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Store.Create(ctx, in)
	if errors.Is(err, catalog.ErrDuplicateName) {
		respondErr(w, http.StatusBadRequest, "A product with this name already exists", nil)
		return
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}
	respondOK(w, http.StatusCreated, "Product created successfully!", p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondErr(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if ferrs := validate.Struct(in); ferrs != nil {
		respondErr(w, http.StatusBadRequest, "Validation failed", ferrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "productId")
	p, err := h.Store.Update(ctx, id, in)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondErr(w, http.StatusBadRequest, "Product not found or deleted", nil)
		return
	case errors.Is(err, catalog.ErrDuplicateName):
		respondErr(w, http.StatusBadRequest, "A product with this name already exists", nil)
		return
	case err != nil:
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}

	h.Cache.Invalidate(ctx, id)
	respondOK(w, http.StatusOK, "Product updated successfully!", p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := chi.URLParam(r, "productId")
	err := h.Store.SoftDelete(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondErr(w, http.StatusBadRequest, "Product not found or deleted", nil)
		return
	}
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}

	h.Cache.Invalidate(ctx, id)
	respondOK(w, http.StatusOK, "Product deleted successfully!", nil)
}
