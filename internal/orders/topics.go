package orders

const (
	TopicOrderPlaced   = "order.placed"
	TopicStockDepleted = "product.stock.depleted"
)

// Partition key = product_id, so stock movements for one product keep their
// order.
func PartitionKey(productID string) []byte { return []byte(productID) }
