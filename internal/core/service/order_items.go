package service

import (
	"context"
	"fmt"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

// OrderItemSet owns an order's line items: it adds them while the order is
// still open and computes the order total from them.
type OrderItemSet struct {
	items  port.OrderItemRepository
	orders port.OrderRepository
}

func NewOrderItemSet(items port.OrderItemRepository, orders port.OrderRepository) *OrderItemSet {
	return &OrderItemSet{items: items, orders: orders}
}

// Add appends a line item. Items are immutable once the order leaves the
// created state; the check runs against the stored order, since the caller's
// copy may be stale.
func (s *OrderItemSet) Add(ctx context.Context, order *domain.Order, productID string, quantity int, unitPrice float64) (*domain.OrderItem, error) {
	item, err := domain.NewOrderItem(order.ID, productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	stored, err := s.orders.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", order.ID, err)
	}
	if stored.State != domain.OrderStateCreated {
		return nil, &domain.ValidationError{Field: "order", Reason: "items cannot change after order " + order.ID + " left the created state"}
	}

	if err := s.items.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add order item: %w", err)
	}
	return item, nil
}

func (s *OrderItemSet) List(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	return s.items.ListItems(ctx, orderID)
}

// Total sums quantity × unit price over the order's items. An empty item set
// totals zero.
func (s *OrderItemSet) Total(ctx context.Context, orderID string) (float64, error) {
	items, err := s.items.ListItems(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("list order items: %w", err)
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total, nil
}
