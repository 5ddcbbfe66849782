package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Arbath/toko-online/internal/adapter/notify"
	"github.com/Arbath/toko-online/internal/adapter/storage"
	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
	"github.com/Arbath/toko-online/internal/core/service"
)

const (
	contestedProduct = "kopi-gayo-250g"
	contestedStock   = 20
	contenders       = 50
)

func main() {
	ctx := context.Background()

	memory := storage.NewMemoryAdapter()
	bus := event.NewBus()

	notifier := notify.NewNotifier(memory)
	notifier.Register(bus)

	ledger := service.NewInventoryLedger(memory, bus)
	itemSet := service.NewOrderItemSet(memory, memory)
	lifecycle := service.NewOrderLifecycle(memory, itemSet, ledger, notifier, bus)

	seed(ctx, memory)

	// Happy path: two line items, confirm, ship.
	order := domain.NewOrder(uuid.New().String())
	if err := memory.SaveOrder(ctx, order); err != nil {
		log.Fatalf("save order: %v", err)
	}
	mustAdd(ctx, itemSet, order, "teh-melati-100g", 2, 10.00)
	mustAdd(ctx, itemSet, order, "gula-aren-500g", 1, 5.00)

	if err := lifecycle.Fire(ctx, domain.EventOrderConfirmed, order); err != nil {
		log.Fatalf("confirm: %v", err)
	}
	fmt.Printf("order %s confirmed, total %.2f\n", order.ID, order.TotalAmount)

	if err := lifecycle.Fire(ctx, domain.EventOrderShipped, order); err != nil {
		log.Fatalf("ship: %v", err)
	}
	fmt.Printf("order %s shipped, status %q\n", order.ID, order.Status())

	// Replay guard: confirming again must fail.
	if err := lifecycle.Fire(ctx, domain.EventOrderConfirmed, order); err != nil {
		fmt.Printf("replayed confirm rejected: %v\n", err)
	}

	// Contention: many single-item orders against one product's stock.
	var confirmed, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			o := domain.NewOrder(uuid.New().String())
			if err := memory.SaveOrder(ctx, o); err != nil {
				log.Printf("save order: %v", err)
				return
			}
			if _, err := itemSet.Add(ctx, o, contestedProduct, 1, 7.50); err != nil {
				log.Printf("add item: %v", err)
				return
			}

			if err := lifecycle.Fire(ctx, domain.EventOrderConfirmed, o); err != nil {
				rejected.Add(1)
			} else {
				confirmed.Add(1)
			}
		}()
	}
	wg.Wait()

	level, err := ledger.Level(ctx, contestedProduct)
	if err != nil {
		log.Fatalf("read level: %v", err)
	}
	fmt.Printf("contention: %d confirmed, %d rejected, %d left of %s\n",
		confirmed.Load(), rejected.Load(), level, contestedProduct)
}

func seed(ctx context.Context, memory *storage.MemoryAdapter) {
	for id, stock := range map[string]int{
		contestedProduct:  contestedStock,
		"teh-melati-100g": 10,
		"gula-aren-500g":  10,
	} {
		record, err := domain.NewInventoryRecord(id, stock, "jakarta-01")
		if err != nil {
			log.Fatalf("seed %s: %v", id, err)
		}
		if err := memory.SaveInventory(ctx, record); err != nil {
			log.Fatalf("seed %s: %v", id, err)
		}
		memory.SeedProduct(domain.Product{ID: id, Name: id})
	}
}

func mustAdd(ctx context.Context, itemSet *service.OrderItemSet, order *domain.Order, productID string, quantity int, price float64) {
	if _, err := itemSet.Add(ctx, order, productID, quantity, price); err != nil {
		log.Fatalf("add item %s: %v", productID, err)
	}
}
