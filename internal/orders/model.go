package orders

// Order is immutable once placed. Price is the price agreed at order time,
// never re-read from the product.
type Order struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderInput is the checkout payload. A zero-quantity order has no business
// meaning, hence the >= 1 floor.
type OrderInput struct {
	Email     string  `json:"email" validate:"required,email"`
	ProductID string  `json:"productId" validate:"required"`
	Price     float64 `json:"price" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
}
