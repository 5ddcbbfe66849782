package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
)

// Relay forwards core events to Kafka so the external reactions behind the
// catalog (purchase-order service, sales team, email service, wishlist
// service) can consume them outside this process.
type Relay struct {
	writer *kafkaGo.Writer
}

func NewRelay(brokers []string) *Relay {
	return &Relay{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

// Register subscribes the relay to the whole event catalog.
func (r *Relay) Register(bus *event.Bus) {
	for _, name := range []domain.EventName{
		domain.EventOrderConfirmed,
		domain.EventOrderShipped,
		domain.EventCustomerEmailUpdated,
		domain.EventProductPriceChanged,
		domain.EventLowStockWarning,
		domain.EventOutOfStockError,
	} {
		bus.Subscribe(name, r.Handle)
	}
}

func (r *Relay) Handle(ctx context.Context, e domain.Event) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", e.Name, err)
	}

	return r.writer.WriteMessages(ctx, kafkaGo.Message{
		Topic: topicFor(e.Name),
		Key:   []byte(string(e.Name)),
		Value: payload,
	})
}

func (r *Relay) Close() error {
	return r.writer.Close()
}

func topicFor(name domain.EventName) string {
	switch name {
	case domain.EventOrderConfirmed:
		return "orders.confirmed"
	case domain.EventOrderShipped:
		return "orders.shipped"
	case domain.EventCustomerEmailUpdated:
		return "customers.email-updated"
	case domain.EventProductPriceChanged:
		return "products.price-changed"
	case domain.EventLowStockWarning:
		return "inventory.low-stock"
	case domain.EventOutOfStockError:
		return "inventory.out-of-stock"
	}
	return "events.unrouted"
}
