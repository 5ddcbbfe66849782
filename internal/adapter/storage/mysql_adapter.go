package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/port"
)

// MySQLAdapter persists orders, line items, and inventory. It honors the
// same contract as the in-memory adapter; callers serialize mutations, so
// writes here are plain upserts.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) SaveOrder(ctx context.Context, order *domain.Order) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, state, created_at, total_amount)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE state = VALUES(state), total_amount = VALUES(total_amount)`,
		order.ID, order.CustomerID, string(order.State), order.CreatedAt, order.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	var state string
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_id, state, created_at, total_amount
		FROM orders WHERE id = ?`, orderID,
	).Scan(&order.ID, &order.CustomerID, &state, &order.CreatedAt, &order.TotalAmount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	order.State = domain.OrderState(state)
	return &order, nil
}

func (m *MySQLAdapter) AddItem(ctx context.Context, item *domain.OrderItem) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id = ?`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (m *MySQLAdapter) InventoryByProduct(ctx context.Context, productID string) (*domain.InventoryRecord, error) {
	var record domain.InventoryRecord
	err := m.db.QueryRowContext(ctx, `
		SELECT id, product_id, stock_level, location
		FROM inventory WHERE product_id = ?`, productID,
	).Scan(&record.ID, &record.ProductID, &record.StockLevel, &record.Location)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	return &record, nil
}

func (m *MySQLAdapter) SaveInventory(ctx context.Context, record *domain.InventoryRecord) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO inventory (id, product_id, stock_level, location)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE stock_level = VALUES(stock_level), location = VALUES(location)`,
		record.ID, record.ProductID, record.StockLevel, record.Location,
	)
	if err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ProductName(ctx context.Context, productID string) (string, error) {
	var name string
	err := m.db.QueryRowContext(ctx,
		`SELECT name FROM products WHERE id = ?`, productID,
	).Scan(&name)

	if errors.Is(err, sql.ErrNoRows) {
		return "", port.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query product: %w", err)
	}
	return name, nil
}
