package port

import (
	"context"

	"github.com/Arbath/toko-online/internal/core/domain"
)

// ProductCatalog resolves product names for display. The catalog itself is
// owned by an external collaborator; the core never makes decisions on it.
type ProductCatalog interface {
	ProductName(ctx context.Context, productID string) (string, error)
}

// ShippingNotifier tells the customer their order left the warehouse.
type ShippingNotifier interface {
	NotifyShipped(ctx context.Context, order *domain.Order) error
}

// EventPublisher broadcasts a named event to its registered handlers.
type EventPublisher interface {
	Publish(ctx context.Context, name domain.EventName, payload any) error
}
