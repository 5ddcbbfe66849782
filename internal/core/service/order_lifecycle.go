package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

// OrderLifecycle is the order state machine: created → confirmed → shipped.
// Firing an event that is not legal in the current state fails with
// InvalidTransitionError and leaves the order untouched; replaying an event
// after its transition already happened fails the same way.
type OrderLifecycle struct {
	orders   port.OrderRepository
	items    *OrderItemSet
	ledger   *InventoryLedger
	shipping port.ShippingNotifier
	bus      port.EventPublisher

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOrderLifecycle(
	orders port.OrderRepository,
	items *OrderItemSet,
	ledger *InventoryLedger,
	shipping port.ShippingNotifier,
	bus port.EventPublisher,
) *OrderLifecycle {
	return &OrderLifecycle{
		orders:   orders,
		items:    items,
		ledger:   ledger,
		shipping: shipping,
		bus:      bus,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Fire runs one lifecycle transition. Transitions on a single order are
// serialized, so two concurrent confirmations cannot both succeed. The
// caller's copy may be stale; the transition is validated against the stored
// order, and the caller's struct is refreshed from it.
func (l *OrderLifecycle) Fire(ctx context.Context, event domain.EventName, order *domain.Order) error {
	lock := l.orderLock(order.ID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := l.orders.GetOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", order.ID, err)
	}
	*order = *stored

	switch {
	case event == domain.EventOrderConfirmed && order.State == domain.OrderStateCreated:
		return l.confirm(ctx, order)
	case event == domain.EventOrderShipped && order.State == domain.OrderStateConfirmed:
		return l.ship(ctx, order)
	default:
		return &domain.InvalidTransitionError{Event: string(event), State: order.State}
	}
}

// confirm recomputes the total, decrements stock for every line item, and
// only then flips the state. An underflow on any item aborts the whole
// confirmation with no stock retained.
func (l *OrderLifecycle) confirm(ctx context.Context, order *domain.Order) error {
	total, err := l.items.Total(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("calculate total for order %s: %w", order.ID, err)
	}

	items, err := l.items.List(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("list items for order %s: %w", order.ID, err)
	}

	if err := l.ledger.DecrementOrder(ctx, items); err != nil {
		return err
	}

	prevTotal := order.TotalAmount
	order.TotalAmount = total
	order.State = domain.OrderStateConfirmed
	if err := l.orders.SaveOrder(ctx, order); err != nil {
		// The decrements already committed; give the stock back so the
		// failed confirmation leaves no trace.
		l.rollbackDecrements(ctx, items)
		order.State = domain.OrderStateCreated
		order.TotalAmount = prevTotal
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}

	slog.Info("order confirmed", "order_id", order.ID, "total", total, "items", len(items))

	return l.bus.Publish(ctx, domain.EventOrderConfirmed, domain.OrderConfirmedPayload{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		TotalAmount: total,
	})
}

func (l *OrderLifecycle) ship(ctx context.Context, order *domain.Order) error {
	if err := l.shipping.NotifyShipped(ctx, order); err != nil {
		return fmt.Errorf("notify shipping for order %s: %w", order.ID, err)
	}

	order.State = domain.OrderStateShipped
	if err := l.orders.SaveOrder(ctx, order); err != nil {
		order.State = domain.OrderStateConfirmed
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}

	slog.Info("order shipped", "order_id", order.ID)

	return l.bus.Publish(ctx, domain.EventOrderShipped, domain.OrderShippedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
	})
}

func (l *OrderLifecycle) rollbackDecrements(ctx context.Context, items []domain.OrderItem) {
	folded := make(map[string]int)
	for _, item := range items {
		folded[item.ProductID] += item.Quantity
	}
	for productID, quantity := range folded {
		if err := l.ledger.Increment(ctx, productID, quantity); err != nil {
			slog.Error("stock rollback failed", "product_id", productID, "quantity", quantity, "err", err)
		}
	}
}

func (l *OrderLifecycle) orderLock(orderID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[orderID] = lock
	}
	return lock
}
