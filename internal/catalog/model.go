package catalog

type Variant struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Inventory struct {
	Quantity int  `json:"quantity"`
	InStock  bool `json:"inStock"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Variants    []Variant `json:"variants"`
	Inventory   Inventory `json:"inventory"`
	IsDeleted   bool      `json:"isDeleted"`
}
