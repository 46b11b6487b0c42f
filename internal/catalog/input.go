package catalog

type VariantInput struct {
	Type  string `json:"type" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type InventoryInput struct {
	Quantity int  `json:"quantity" validate:"gte=0"`
	InStock  bool `json:"inStock"`
}

// ProductInput is the admin-facing create/update payload. The inStock flag is
// accepted for compatibility but recomputed from quantity on every write so
// that inStock == (quantity > 0) always holds.
//
// Inventory is a pointer so an absent section is rejected rather than read as
// quantity 0. Tags may be empty but must be present.
type ProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       float64         `json:"price" validate:"gte=0"`
	Category    string          `json:"category" validate:"required"`
	Tags        []string        `json:"tags" validate:"required,dive,required"`
	Variants    []VariantInput  `json:"variants" validate:"min=1,dive"`
	Inventory   *InventoryInput `json:"inventory" validate:"required"`
}

func (in ProductInput) variants() []Variant {
	out := make([]Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		out = append(out, Variant{Type: v.Type, Value: v.Value})
	}
	return out
}
