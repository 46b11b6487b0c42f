package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarizkyr/go-shop-api/internal/catalog"
	"github.com/adityarizkyr/go-shop-api/internal/validate"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// fakeCatalog is an in-memory stand-in for catalog.Repo with the same
// soft-delete and search semantics.
type fakeCatalog struct {
	products map[string]catalog.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]catalog.Product{}}
}

func (f *fakeCatalog) add(p catalog.Product) catalog.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Inventory.InStock = p.Inventory.Quantity > 0
	f.products[p.ID] = p
	return p
}

func (f *fakeCatalog) Create(_ context.Context, in catalog.ProductInput) (catalog.Product, error) {
	for _, p := range f.products {
		if !p.IsDeleted && p.Name == in.Name {
			return catalog.Product{}, catalog.ErrDuplicateName
		}
	}
	variants := make([]catalog.Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		variants = append(variants, catalog.Variant{Type: v.Type, Value: v.Value})
	}
	return f.add(catalog.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Tags:        in.Tags,
		Variants:    variants,
		Inventory:   catalog.Inventory{Quantity: in.Inventory.Quantity},
	}), nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok || p.IsDeleted {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) FindAll(_ context.Context) ([]catalog.Product, error) {
	out := []catalog.Product{}
	for _, p := range f.products {
		if !p.IsDeleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Search(_ context.Context, term string) ([]catalog.Product, error) {
	t := strings.ToLower(term)
	out := []catalog.Product{}
	for _, p := range f.products {
		if p.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), t) ||
			strings.Contains(strings.ToLower(p.Description), t) ||
			strings.Contains(strings.ToLower(p.Category), t) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Update(_ context.Context, id string, in catalog.ProductInput) (catalog.Product, error) {
	p, ok := f.products[id]
	if !ok || p.IsDeleted {
		return catalog.Product{}, catalog.ErrNotFound
	}
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.Tags = in.Tags
	p.Inventory.Quantity = in.Inventory.Quantity
	p.Inventory.InStock = in.Inventory.Quantity > 0
	f.products[id] = p
	return p, nil
}

func (f *fakeCatalog) SoftDelete(_ context.Context, id string) error {
	p, ok := f.products[id]
	if !ok || p.IsDeleted {
		return catalog.ErrNotFound
	}
	p.IsDeleted = true
	f.products[id] = p
	return nil
}

func productsServer(store ProductStore) *httptest.Server {
	r := NewRouter()
	h := &ProductsHandler{Store: store}
	h.Register(r)
	return httptest.NewServer(r)
}

func decodeEnvelope(t *testing.T, res *http.Response) envelope {
	t.Helper()
	defer res.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return env
}

func TestListProducts(t *testing.T) {
	fc := newFakeCatalog()
	fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools", Inventory: catalog.Inventory{Quantity: 5}})
	fc.add(catalog.Product{Name: "Gadget", Description: "A gadget", Category: "tools", Inventory: catalog.Inventory{Quantity: 2}})
	srv := productsServer(fc)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/products")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	env := decodeEnvelope(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, "Products fetched successfully!", env.Message)
	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	assert.Len(t, ps, 2)
}

func TestSearchProducts(t *testing.T) {
	fc := newFakeCatalog()
	fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools"})
	fc.add(catalog.Product{Name: "Gadget", Description: "A gadget", Category: "tools"})
	srv := productsServer(fc)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/products?searchTerm=wid")
	require.NoError(t, err)
	env := decodeEnvelope(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, "Products matching search term 'wid' fetched successfully!", env.Message)

	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	require.Len(t, ps, 1)
	assert.Equal(t, "Widget", ps[0].Name)
}

func TestGetProductByID(t *testing.T) {
	fc := newFakeCatalog()
	p := fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools", Inventory: catalog.Inventory{Quantity: 5}})
	srv := productsServer(fc)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/products/" + p.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	env := decodeEnvelope(t, res)
	var got catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.Inventory.InStock)
	assert.False(t, got.IsDeleted)
}

func TestGetProductNotFound(t *testing.T) {
	srv := productsServer(newFakeCatalog())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/products/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	env := decodeEnvelope(t, res)
	assert.False(t, env.Success)
}

func TestCreateProduct(t *testing.T) {
	srv := productsServer(newFakeCatalog())
	defer srv.Close()

	body := `{
		"name": "Widget", "description": "A widget", "price": 10, "category": "tools",
		"tags": ["small"], "variants": [{"type": "color", "value": "red"}],
		"inventory": {"quantity": 5, "inStock": true}
	}`
	res, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	env := decodeEnvelope(t, res)
	assert.True(t, env.Success)
	assert.Equal(t, "Product created successfully!", env.Message)
	var p catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.IsDeleted)
}

func TestCreateProductValidationFailure(t *testing.T) {
	srv := productsServer(newFakeCatalog())
	defer srv.Close()

	// no variants, negative price
	body := `{"name": "", "description": "x", "price": -1, "category": "tools", "variants": []}`
	res, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	env := decodeEnvelope(t, res)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	var ferrs []validate.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &ferrs))
	fields := make([]string, 0, len(ferrs))
	for _, fe := range ferrs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "variants")
}

func TestCreateProductDuplicateName(t *testing.T) {
	fc := newFakeCatalog()
	fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools"})
	srv := productsServer(fc)
	defer srv.Close()

	body := `{
		"name": "Widget", "description": "Another", "price": 1, "category": "tools",
		"tags": [], "variants": [{"type": "color", "value": "blue"}],
		"inventory": {"quantity": 1, "inStock": true}
	}`
	res, err := http.Post(srv.URL+"/api/products", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSoftDeleteHidesProduct(t *testing.T) {
	fc := newFakeCatalog()
	p := fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools"})
	srv := productsServer(fc)
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/products/"+p.ID, nil)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	env := decodeEnvelope(t, res)
	assert.Equal(t, "Product deleted successfully!", env.Message)

	// excluded from point lookup
	res, err = http.Get(srv.URL + "/api/products/" + p.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	res.Body.Close()

	// and from listings and search
	res, err = http.Get(srv.URL + "/api/products")
	require.NoError(t, err)
	env = decodeEnvelope(t, res)
	var ps []catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	assert.Empty(t, ps)

	res, err = http.Get(srv.URL + "/api/products?searchTerm=wid")
	require.NoError(t, err)
	env = decodeEnvelope(t, res)
	require.NoError(t, json.Unmarshal(env.Data, &ps))
	assert.Empty(t, ps)
}

func TestUpdateProduct(t *testing.T) {
	fc := newFakeCatalog()
	p := fc.add(catalog.Product{Name: "Widget", Description: "A widget", Category: "tools", Inventory: catalog.Inventory{Quantity: 5}})
	srv := productsServer(fc)
	defer srv.Close()

	body := `{
		"name": "Widget v2", "description": "A better widget", "price": 12, "category": "tools",
		"tags": ["new"], "variants": [{"type": "color", "value": "red"}],
		"inventory": {"quantity": 0, "inStock": true}
	}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/products/"+p.ID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	env := decodeEnvelope(t, res)
	assert.Equal(t, "Product updated successfully!", env.Message)
	var got catalog.Product
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Widget v2", got.Name)
	// inStock is derived from quantity, whatever the client claims
	assert.False(t, got.Inventory.InStock)
}

func TestUnmatchedRoute(t *testing.T) {
	srv := productsServer(newFakeCatalog())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/nothing-here")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	env := decodeEnvelope(t, res)
	assert.False(t, env.Success)
	assert.Equal(t, "Route not found", env.Message)
}
