package domain

import "time"

// Product and Customer are managed by external collaborators. The core only
// reads them for display and holds references by ID.

type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       float64
}

type Customer struct {
	ID           string
	Name         string
	Email        string
	RegisteredAt time.Time
}
