package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

const inventoryKeyPrefix = "inventory:"

// RedisAdapter keeps inventory records in Redis hashes, one per product.
// The ledger serializes mutations, so reads and writes here are plain hash
// operations.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) InventoryByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	fields, err := r.client.HGetAll(ctx, inventoryKeyPrefix+productID).Result()
	if err != nil {
		return nil, fmt.Errorf("read inventory hash: %w", err)
	}
	if len(fields) == 0 {
		return nil, port.ErrNotFound
	}

	level, err := strconv.Atoi(fields["stock_level"])
	if err != nil {
		return nil, fmt.Errorf("parse stock level for %s: %w", productID, err)
	}

	return &domain.InventoryRecord{
		ID:         fields["id"],
		ProductID:  productID,
		StockLevel: level,
		Location:   fields["location"],
	}, nil
}

func (r *RedisAdapter) SaveInventory(ctx context.Context, record *domain.InventoryRecord) error {
	err := r.client.HSet(ctx, inventoryKeyPrefix+record.ProductID,
		"id", record.ID,
		"stock_level", record.StockLevel,
		"location", record.Location,
	).Err()
	if err != nil {
		return fmt.Errorf("write inventory hash: %w", err)
	}
	return nil
}
