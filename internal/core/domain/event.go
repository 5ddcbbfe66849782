package domain

type EventName string

const (
	EventOrderConfirmed       EventName = "OrderConfirmed"
	EventOrderShipped         EventName = "OrderShipped"
	EventCustomerEmailUpdated EventName = "CustomerEmailUpdated"
	EventProductPriceChanged  EventName = "ProductPriceChanged"
	EventLowStockWarning      EventName = "LowStockWarning"
	EventOutOfStockError      EventName = "OutOfStockError"
)

// Event is an ephemeral notification: published and consumed synchronously,
// never persisted by the core.
type Event struct {
	Name    EventName
	Entity  string
	Payload any
}

// TriggerEntity names the entity kind whose mutation raises the event.
func (n EventName) TriggerEntity() string {
	switch n {
	case EventOrderConfirmed, EventOrderShipped:
		return "Order"
	case EventCustomerEmailUpdated:
		return "Customer"
	case EventProductPriceChanged:
		return "Product"
	case EventLowStockWarning, EventOutOfStockError:
		return "Inventory"
	}
	return ""
}

type OrderConfirmedPayload struct {
	OrderID     string  `json:"order_id"`
	CustomerID  string  `json:"customer_id"`
	TotalAmount float64 `json:"total_amount"`
}

type OrderShippedPayload struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
}

type CustomerEmailUpdatedPayload struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
}

type ProductPriceChangedPayload struct {
	ProductID string  `json:"product_id"`
	OldPrice  float64 `json:"old_price"`
	NewPrice  float64 `json:"new_price"`
}

type LowStockWarningPayload struct {
	ProductID  string `json:"product_id"`
	StockLevel int    `json:"stock_level"`
	Location   string `json:"location"`
}

type OutOfStockErrorPayload struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}
