package stockwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/adityarizkyr/go-shop-api/internal/kafka"
	"github.com/adityarizkyr/go-shop-api/internal/orders"
	"github.com/adityarizkyr/go-shop-api/internal/redisx"
)

// Service watches order.placed events and flags products whose remaining
// stock fell to or below the threshold. When stock hits zero it announces the
// depletion on its own topic.
type Service struct {
	Redis       *redis.Client
	Producer    *kafkax.Producer // publishes product.stock.depleted
	Threshold   int
	ServiceName string
}

// HandleOrderPlaced is wired as the consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// dedup by event_id so replays do not re-alert
	dkey := fmt.Sprintf(redisx.KeyDedup, "stockwatch", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}
	if !s.LowStock(p.Remaining) {
		return nil
	}

	log.Printf("low stock: product=%s remaining=%d", p.ProductID, p.Remaining)
	lkey := fmt.Sprintf(redisx.KeyLowStock, p.ProductID)
	_ = s.Redis.Set(ctx, lkey, p.Remaining, redisx.TTLLowStock).Err()

	if p.Remaining == 0 {
		s.publishDepleted(p.ProductID, env.TraceID)
	}
	return nil
}

// LowStock reports whether remaining warrants an alert.
func (s *Service) LowStock(remaining int) bool {
	return remaining <= s.Threshold
}

func (s *Service) publishDepleted(productID, trace string) {
	if s.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventStockDepleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: productID,
		Payload:       kafkax.MustMarshal(orders.StockDepletedPayload{ProductID: productID}),
	}
	s.Producer.Publish(orders.PartitionKey(productID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventStockDepleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
