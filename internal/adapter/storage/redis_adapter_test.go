package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisAdapter_InventoryRoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "inventory:test-product")

	record, err := domain.NewInventoryRecord("test-product", 15, "warehouse-a")
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	if err := adapter.SaveInventory(ctx, record); err != nil {
		t.Fatalf("save inventory: %v", err)
	}

	got, err := adapter.InventoryByProduct(ctx, "test-product")
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if got.StockLevel != 15 || got.Location != "warehouse-a" || got.ID != record.ID {
		t.Errorf("unexpected record: %+v", got)
	}

	record.StockLevel = 9
	if err := adapter.SaveInventory(ctx, record); err != nil {
		t.Fatalf("update inventory: %v", err)
	}
	got, err = adapter.InventoryByProduct(ctx, "test-product")
	if err != nil {
		t.Fatalf("get inventory: %v", err)
	}
	if got.StockLevel != 9 {
		t.Errorf("expected stock 9, got %d", got.StockLevel)
	}
}

func TestRedisAdapter_InventoryNotFound(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "inventory:missing-product")

	_, err := adapter.InventoryByProduct(ctx, "missing-product")
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
