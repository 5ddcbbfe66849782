package port

import (
	"context"
	"errors"

	"github.com/Arbath/toko-online/internal/core/domain"
)

// ErrNotFound is returned when a repository holds no record for the given key.
var ErrNotFound = errors.New("not found")

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type OrderItemRepository interface {
	AddItem(ctx context.Context, item *domain.OrderItem) error
	ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
}

type InventoryRepository interface {
	InventoryByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	SaveInventory(ctx context.Context, record *domain.InventoryRecord) error
}
