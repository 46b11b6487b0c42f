package orders

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, o Order) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO orders(id, email, product_id, price, quantity)
		VALUES ($1,$2,$3,$4,$5)`,
		o.ID, o.Email, o.ProductID, o.Price, o.Quantity,
	)
	return err
}

func (r *Repo) FindAll(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, email, product_id, price, quantity
	                              FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *Repo) FindByEmail(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, email, product_id, price, quantity
	                              FROM orders WHERE email=$1 ORDER BY created_at`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Email, &o.ProductID, &o.Price, &o.Quantity); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
