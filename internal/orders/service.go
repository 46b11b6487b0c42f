package orders

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/adityarizkyr/go-shop-api/internal/catalog"
)

var (
	ErrProductNotFound   = errors.New("the product does not exist")
	ErrInsufficientStock = errors.New("insufficient quantity available in inventory")
)

// Inventory is the slice of the catalog the workflow needs: a conditional
// decrement that either takes the units or reports why it could not, and a
// compensating restock.
type Inventory interface {
	DecrementStock(ctx context.Context, productID string, qty int) (remaining int, err error)
	Restock(ctx context.Context, productID string, qty int) error
}

type Store interface {
	Insert(ctx context.Context, o Order) error
}

// Service is the order placement workflow: decrement stock, record the order.
type Service struct {
	Inventory Inventory
	Orders    Store
}

// PlaceOrder takes quantity units off the product's inventory and inserts the
// order. The decrement is atomic, so no stock check against stale data is
// possible; if the insert fails afterwards the units are put back.
// Returns the created order and the product's remaining quantity.
func (s *Service) PlaceOrder(ctx context.Context, in OrderInput) (Order, int, error) {
	remaining, err := s.Inventory.DecrementStock(ctx, in.ProductID, in.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			return Order{}, 0, ErrProductNotFound
		case errors.Is(err, catalog.ErrInsufficientStock):
			return Order{}, 0, ErrInsufficientStock
		}
		return Order{}, 0, err
	}

	o := Order{
		ID:        uuid.NewString(),
		Email:     in.Email,
		ProductID: in.ProductID,
		Price:     in.Price,
		Quantity:  in.Quantity,
	}
	if err := s.Orders.Insert(ctx, o); err != nil {
		if rerr := s.Inventory.Restock(ctx, in.ProductID, in.Quantity); rerr != nil {
			log.Printf("restock %s after failed insert: %v", in.ProductID, rerr)
		}
		return Order{}, 0, err
	}
	return o, remaining, nil
}
