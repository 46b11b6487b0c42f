package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrDuplicateName     = errors.New("product name already taken")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `id, name, description, price, category, tags, variants, inventory_quantity, in_stock, is_deleted`

func (r *Repo) Create(ctx context.Context, in ProductInput) (Product, error) {
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Tags:        in.Tags,
		Variants:    in.variants(),
		Inventory: Inventory{
			Quantity: in.Inventory.Quantity,
			InStock:  in.Inventory.Quantity > 0,
		},
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, price, category, tags, variants, inventory_quantity, in_stock)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.Tags, p.Variants,
		p.Inventory.Quantity, p.Inventory.InStock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrDuplicateName
		}
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (Product, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products
	                           WHERE id=$1 AND NOT is_deleted`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products
	                              WHERE NOT is_deleted ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Search matches a case-insensitive substring against name, description or
// category.
func (r *Repo) Search(ctx context.Context, term string) ([]Product, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products
		WHERE NOT is_deleted
		  AND (name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1)
		ORDER BY name`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *Repo) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, category=$5, tags=$6, variants=$7,
		    inventory_quantity=$8, in_stock=$9, updated_at=now()
		WHERE id=$1 AND NOT is_deleted`,
		id, in.Name, in.Description, in.Price, in.Category, tags, in.variants(),
		in.Inventory.Quantity, in.Inventory.Quantity > 0,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrDuplicateName
		}
		return Product{}, err
	}
	if ct.RowsAffected() == 0 {
		return Product{}, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *Repo) SoftDelete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `UPDATE products SET is_deleted=TRUE, updated_at=now()
	                           WHERE id=$1 AND NOT is_deleted`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock takes qty units off the shelf in one conditional statement,
// so two racing orders can never jointly oversell. Returns the remaining
// quantity on success.
func (r *Repo) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	var remaining int
	err := r.DB.QueryRow(ctx, `
		UPDATE products
		SET inventory_quantity = inventory_quantity - $2,
		    in_stock = inventory_quantity - $2 > 0,
		    updated_at = now()
		WHERE id=$1 AND NOT is_deleted AND inventory_quantity >= $2
		RETURNING inventory_quantity`, id, qty).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	// conditional update missed: absent product or not enough stock
	var stock int
	err = r.DB.QueryRow(ctx, `SELECT inventory_quantity FROM products
	                          WHERE id=$1 AND NOT is_deleted`, id).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return 0, ErrInsufficientStock
}

// Restock reverses a decrement that could not be followed through.
func (r *Repo) Restock(ctx context.Context, id string, qty int) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE products
		SET inventory_quantity = inventory_quantity + $2,
		    in_stock = inventory_quantity + $2 > 0,
		    updated_at = now()
		WHERE id=$1`, id, qty)
	return err
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Tags, &p.Variants, &p.Inventory.Quantity, &p.Inventory.InStock, &p.IsDeleted)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
