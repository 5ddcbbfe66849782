package domain

import "github.com/google/uuid"

// LowStockThreshold is the level below which a decrement raises a warning.
const LowStockThreshold = 10

type InventoryRecord struct {
	ID         string
	ProductID  string
	StockLevel int
	Location   string
}

func NewInventoryRecord(productID string, stockLevel int, location string) (*InventoryRecord, error) {
	if stockLevel < 0 {
		return nil, &ValidationError{Field: "stock_level", Reason: "must not be negative"}
	}
	return &InventoryRecord{
		ID:         uuid.New().String(),
		ProductID:  productID,
		StockLevel: stockLevel,
		Location:   location,
	}, nil
}
