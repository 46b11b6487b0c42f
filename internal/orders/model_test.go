package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarizkyr/go-shop-api/internal/validate"
)

func validOrderInput() OrderInput {
	return OrderInput{
		Email:     "buyer@example.com",
		ProductID: "p-1",
		Price:     10,
		Quantity:  3,
	}
}

func TestOrderInputValid(t *testing.T) {
	assert.Nil(t, validate.Struct(validOrderInput()))
}

func TestOrderInputRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderInput)
		field  string
	}{
		{"missing email", func(in *OrderInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *OrderInput) { in.Email = "not-an-email" }, "email"},
		{"missing product id", func(in *OrderInput) { in.ProductID = "" }, "productId"},
		{"zero price", func(in *OrderInput) { in.Price = 0 }, "price"},
		{"negative price", func(in *OrderInput) { in.Price = -5 }, "price"},
		{"zero quantity", func(in *OrderInput) { in.Quantity = 0 }, "quantity"},
		{"negative quantity", func(in *OrderInput) { in.Quantity = -2 }, "quantity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validOrderInput()
			tc.mutate(&in)
			ferrs := validate.Struct(in)
			require.NotEmpty(t, ferrs)
			assert.Equal(t, tc.field, ferrs[0].Field)
			assert.NotEmpty(t, ferrs[0].Message)
		})
	}
}
