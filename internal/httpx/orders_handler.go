package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/adityarizkyr/go-shop-api/internal/kafka"
	"github.com/adityarizkyr/go-shop-api/internal/orders"
	"github.com/adityarizkyr/go-shop-api/internal/validate"
)

type OrderStore interface {
	FindAll(ctx context.Context) ([]orders.Order, error)
	FindByEmail(ctx context.Context, email string) ([]orders.Order, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in orders.OrderInput) (orders.Order, int, error)
}

// Publisher is satisfied by kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Invalidator is satisfied by ProductCache. Placement mutates inventory, so
// the cached product copy has to go.
type Invalidator interface {
	Invalidate(ctx context.Context, productID string)
}

type OrdersHandler struct {
	Store    OrderStore
	Placer   OrderPlacer
	Producer Publisher
	Cache    Invalidator
	Service  string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Get("/api/orders", h.list)
	r.Post("/api/orders", h.create)
}

func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email != "" {
		os, err := h.Store.FindByEmail(ctx, email)
		if err != nil {
			respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
			return
		}
		if len(os) == 0 {
			respondErr(w, http.StatusBadRequest, "Order not found for this email", nil)
			return
		}
		respondOK(w, http.StatusOK, "Orders fetched successfully for user email!", os)
		return
	}

	os, err := h.Store.FindAll(ctx)
	if err != nil {
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}
	if len(os) == 0 {
		respondErr(w, http.StatusBadRequest, "Order not found", nil)
		return
	}
	respondOK(w, http.StatusOK, "Orders fetched successfully!", os)
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var in orders.OrderInput
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

	o, remaining, err := h.Placer.PlaceOrder(ctx, in)
	switch {
	case errors.Is(err, orders.ErrProductNotFound):
		respondErr(w, http.StatusBadRequest, "The product does not exist!", nil)
		return
	case errors.Is(err, orders.ErrInsufficientStock):
		respondErr(w, http.StatusConflict, "Insufficient quantity available in inventory", nil)
		return
	case err != nil:
		respondErr(w, http.StatusInternalServerError, "Request could not complete", nil)
		return
	}

	if h.Cache != nil {
		h.Cache.Invalidate(ctx, o.ProductID)
	}
	h.publishPlaced(r, o, remaining)
	respondOK(w, http.StatusCreated, "Order created successfully!", o)
}

func (h *OrdersHandler) publishPlaced(r *http.Request, o orders.Order, remaining int) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID:   o.ID,
			Email:     o.Email,
			ProductID: o.ProductID,
			Price:     o.Price,
			Quantity:  o.Quantity,
			Remaining: remaining,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ProductID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
