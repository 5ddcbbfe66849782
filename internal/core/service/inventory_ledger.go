package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

// InventoryLedger owns stock levels per product. Stock never goes negative:
// a decrement that would underflow is rejected, not clamped. One mutex
// serializes all mutations, which also serializes them per product.
type InventoryLedger struct {
	records port.InventoryRepository
	bus     port.EventPublisher
	mu      sync.Mutex
}

func NewInventoryLedger(records port.InventoryRepository, bus port.EventPublisher) *InventoryLedger {
	return &InventoryLedger{records: records, bus: bus}
}

// Decrement reduces stock for a product. Crossing below the low-stock
// threshold publishes LowStockWarning; an underflow publishes OutOfStockError
// and fails with InsufficientStockError, leaving stock unchanged.
func (l *InventoryLedger) Decrement(ctx context.Context, productID string, amount int) error {
	if amount <= 0 {
		return &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decrementLocked(ctx, productID, amount)
}

func (l *InventoryLedger) decrementLocked(ctx context.Context, productID string, amount int) error {
	record, err := l.records.InventoryByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("load inventory for %s: %w", productID, err)
	}

	if record.StockLevel < amount {
		l.publish(ctx, domain.EventOutOfStockError, domain.OutOfStockErrorPayload{
			ProductID: productID,
			Requested: amount,
			Available: record.StockLevel,
		})
		return &domain.InsufficientStockError{
			ProductID: productID,
			Requested: amount,
			Available: record.StockLevel,
		}
	}

	record.StockLevel -= amount
	if err := l.records.SaveInventory(ctx, record); err != nil {
		return fmt.Errorf("save inventory for %s: %w", productID, err)
	}

	if record.StockLevel < domain.LowStockThreshold {
		l.publish(ctx, domain.EventLowStockWarning, domain.LowStockWarningPayload{
			ProductID:  productID,
			StockLevel: record.StockLevel,
			Location:   record.Location,
		})
	}
	return nil
}

// DecrementOrder applies every line item's decrement or none of them. All
// levels are checked before any is written, so an underflow on one product
// leaves every product untouched.
func (l *InventoryLedger) DecrementOrder(ctx context.Context, items []domain.OrderItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// An order may reference the same product more than once; decrements per
	// product are folded together before checking.
	needed := make(map[string]int)
	records := make(map[string]*domain.InventoryRecord)
	var products []string
	for _, item := range items {
		if _, ok := records[item.ProductID]; !ok {
			record, err := l.records.InventoryByProduct(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("load inventory for %s: %w", item.ProductID, err)
			}
			records[item.ProductID] = record
			products = append(products, item.ProductID)
		}
		needed[item.ProductID] += item.Quantity
	}

	for _, productID := range products {
		if records[productID].StockLevel < needed[productID] {
			l.publish(ctx, domain.EventOutOfStockError, domain.OutOfStockErrorPayload{
				ProductID: productID,
				Requested: needed[productID],
				Available: records[productID].StockLevel,
			})
			return &domain.InsufficientStockError{
				ProductID: productID,
				Requested: needed[productID],
				Available: records[productID].StockLevel,
			}
		}
	}

	// Commit all levels before signaling, so a failed save can restore the
	// products already written without a warning having leaked.
	for i, productID := range products {
		record := records[productID]
		record.StockLevel -= needed[productID]
		if err := l.records.SaveInventory(ctx, record); err != nil {
			l.restoreLocked(ctx, products[:i], needed)
			return fmt.Errorf("save inventory for %s: %w", productID, err)
		}
	}

	for _, productID := range products {
		record := records[productID]
		if record.StockLevel < domain.LowStockThreshold {
			l.publish(ctx, domain.EventLowStockWarning, domain.LowStockWarningPayload{
				ProductID:  productID,
				StockLevel: record.StockLevel,
				Location:   record.Location,
			})
		}
	}
	return nil
}

// restoreLocked gives back quantities already decremented in an aborted
// batch. Callers hold the ledger mutex.
func (l *InventoryLedger) restoreLocked(ctx context.Context, products []string, needed map[string]int) {
	for _, productID := range products {
		record, err := l.records.InventoryByProduct(ctx, productID)
		if err != nil {
			slog.Error("stock rollback failed", "product_id", productID, "err", err)
			continue
		}
		record.StockLevel += needed[productID]
		if err := l.records.SaveInventory(ctx, record); err != nil {
			slog.Error("stock rollback failed", "product_id", productID, "err", err)
		}
	}
}

// Increment restocks a product. Restocking never raises a low-stock warning.
func (l *InventoryLedger) Increment(ctx context.Context, productID string, amount int) error {
	if amount <= 0 {
		return &domain.ValidationError{Field: "amount", Reason: "must be positive"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := l.records.InventoryByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("load inventory for %s: %w", productID, err)
	}

	record.StockLevel += amount
	if err := l.records.SaveInventory(ctx, record); err != nil {
		return fmt.Errorf("save inventory for %s: %w", productID, err)
	}
	return nil
}

// Level reports the current stock level for a product.
func (l *InventoryLedger) Level(ctx context.Context, productID string) (int, error) {
	record, err := l.records.InventoryByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("load inventory for %s: %w", productID, err)
	}
	return record.StockLevel, nil
}

// The ledger's own signals are advisory: a failing downstream handler must
// not roll back a stock mutation that already committed.
func (l *InventoryLedger) publish(ctx context.Context, name domain.EventName, payload any) {
	if err := l.bus.Publish(ctx, name, payload); err != nil {
		slog.Error("event handler failed", "event", string(name), "err", err)
	}
}
