package storage

import (
	"context"
	"sync"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

// MemoryAdapter keeps every repository in process memory. It is the
// reference implementation of the persistence contract and the default
// backing store for the server and the tests.
type MemoryAdapter struct {
	mu        sync.RWMutex
	orders    map[string]domain.Order
	items     map[string][]domain.OrderItem
	inventory map[string]domain.InventoryRecord
	products  map[string]domain.Product
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		orders:    make(map[string]domain.Order),
		items:     make(map[string][]domain.OrderItem),
		inventory: make(map[string]domain.InventoryRecord),
		products:  make(map[string]domain.Product),
	}
}

func (m *MemoryAdapter) SaveOrder(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

func (m *MemoryAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[orderID]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &order, nil
}

func (m *MemoryAdapter) AddItem(ctx context.Context, item *domain.OrderItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.OrderID] = append(m.items[item.OrderID], *item)
	return nil
}

func (m *MemoryAdapter) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]domain.OrderItem, len(m.items[orderID]))
	copy(items, m.items[orderID])
	return items, nil
}

func (m *MemoryAdapter) InventoryByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.inventory[productID]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &record, nil
}

func (m *MemoryAdapter) SaveInventory(ctx context.Context, record *domain.InventoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inventory[record.ProductID] = *record
	return nil
}

func (m *MemoryAdapter) ProductName(ctx context.Context, productID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, ok := m.products[productID]
	if !ok {
		return "", port.ErrNotFound
	}
	return product.Name, nil
}

// SeedProduct registers catalog data owned by an external collaborator.
func (m *MemoryAdapter) SeedProduct(product domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}
