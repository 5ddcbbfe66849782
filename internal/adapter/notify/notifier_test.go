package notify

import (
	"context"
	"testing"

	"github.com/Arbath/toko-online/internal/adapter/storage"
	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
)

func TestRegister_CatalogReactionsAcceptTheirPayloads(t *testing.T) {
	memory := storage.NewMemoryAdapter()
	memory.SeedProduct(domain.Product{ID: "p1", Name: "Kopi Gayo 250g"})

	bus := event.NewBus()
	NewNotifier(memory).Register(bus)

	ctx := context.Background()
	cases := []struct {
		name    domain.EventName
		payload any
	}{
		{domain.EventCustomerEmailUpdated, domain.CustomerEmailUpdatedPayload{CustomerID: "c1", Email: "a@b.id"}},
		{domain.EventOrderShipped, domain.OrderShippedPayload{OrderID: "o1", CustomerID: "c1"}},
		{domain.EventProductPriceChanged, domain.ProductPriceChangedPayload{ProductID: "p1", OldPrice: 7.5, NewPrice: 8.0}},
		{domain.EventLowStockWarning, domain.LowStockWarningPayload{ProductID: "p1", StockLevel: 9}},
		{domain.EventOutOfStockError, domain.OutOfStockErrorPayload{ProductID: "p1", Requested: 6, Available: 5}},
	}
	for _, tc := range cases {
		if err := bus.Publish(ctx, tc.name, tc.payload); err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestRegister_MismatchedPayloadFails(t *testing.T) {
	bus := event.NewBus()
	NewNotifier(storage.NewMemoryAdapter()).Register(bus)

	err := bus.Publish(context.Background(), domain.EventLowStockWarning, "not a payload struct")
	if err == nil {
		t.Error("expected error for mismatched payload")
	}
}

func TestNotifyShipped(t *testing.T) {
	notifier := NewNotifier(storage.NewMemoryAdapter())
	if err := notifier.NotifyShipped(context.Background(), domain.NewOrder("c1")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
