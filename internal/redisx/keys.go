package redisx

import "time"

const (
	// Cache of a single product document: product:{product_id} -> JSON
	KeyProduct = "product:%s"

	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Low-stock flag set by the stockwatch consumer: stock:low:{product_id} -> remaining qty
	KeyLowStock = "stock:low:%s"
)

var (
	TTLProductCache = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
	TTLLowStock     = 24 * time.Hour
)
