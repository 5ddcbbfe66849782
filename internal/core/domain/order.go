package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderState string

const (
	OrderStateCreated   OrderState = "created"
	OrderStateConfirmed OrderState = "confirmed"
	OrderStateShipped   OrderState = "shipped"
)

type Order struct {
	ID          string
	CustomerID  string
	State       OrderState
	CreatedAt   time.Time
	TotalAmount float64
}

func NewOrder(customerID string) *Order {
	return &Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		State:      OrderStateCreated,
		CreatedAt:  time.Now(),
	}
}

// Status is the display projection of the lifecycle state.
func (o *Order) Status() string {
	return string(o.State)
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64
}

func NewOrderItem(orderID, productID string, quantity int, unitPrice float64) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if unitPrice < 0 {
		return nil, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	return &OrderItem{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

func (i *OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
