package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Arbath/toko-online/internal/core/domain"
	"github.com/Arbath/toko-online/internal/core/event"
	"github.com/Arbath/toko-online/internal/port"
)

// Notifier hosts the catalog reactions. The services behind them (email,
// wishlist, purchasing, sales) are external collaborators; these handlers
// record the hand-off and leave delivery to the message relay.
type Notifier struct {
	catalog port.ProductCatalog
}

func NewNotifier(catalog port.ProductCatalog) *Notifier {
	return &Notifier{catalog: catalog}
}

// Register wires every reaction to its triggering event.
func (n *Notifier) Register(bus *event.Bus) {
	bus.Subscribe(domain.EventCustomerEmailUpdated, n.sendVerificationEmail)
	bus.Subscribe(domain.EventOrderShipped, n.logShipment)
	bus.Subscribe(domain.EventProductPriceChanged, n.notifyWishlistUsers)
	bus.Subscribe(domain.EventLowStockWarning, n.createPurchaseOrder)
	bus.Subscribe(domain.EventOutOfStockError, n.notifySalesTeam)
	bus.Subscribe(domain.EventOutOfStockError, n.sendErrorNotification)
}

// NotifyShipped implements port.ShippingNotifier.
func (n *Notifier) NotifyShipped(ctx context.Context, order *domain.Order) error {
	slog.Info("notifying customer of shipment", "order_id", order.ID, "customer_id", order.CustomerID)
	return nil
}

func (n *Notifier) sendVerificationEmail(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.CustomerEmailUpdatedPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Info("sending verification email", "customer_id", p.CustomerID, "email", p.Email)
	return nil
}

func (n *Notifier) logShipment(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.OrderShippedPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Info("shipment recorded", "order_id", p.OrderID, "customer_id", p.CustomerID)
	return nil
}

func (n *Notifier) notifyWishlistUsers(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.ProductPriceChangedPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Info("notifying wishlist users", "product", n.displayName(ctx, p.ProductID),
		"old_price", p.OldPrice, "new_price", p.NewPrice)
	return nil
}

func (n *Notifier) createPurchaseOrder(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.LowStockWarningPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Warn("requesting purchase order", "product", n.displayName(ctx, p.ProductID),
		"stock_level", p.StockLevel, "location", p.Location)
	return nil
}

func (n *Notifier) notifySalesTeam(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.OutOfStockErrorPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Warn("notifying sales team of stock-out", "product", n.displayName(ctx, p.ProductID),
		"requested", p.Requested, "available", p.Available)
	return nil
}

func (n *Notifier) sendErrorNotification(ctx context.Context, e domain.Event) error {
	p, ok := e.Payload.(domain.OutOfStockErrorPayload)
	if !ok {
		return payloadError(e)
	}
	slog.Error("stock-out error notification", "product_id", p.ProductID,
		"requested", p.Requested, "available", p.Available)
	return nil
}

// displayName is best-effort: the product id stands in when the catalog has
// no record.
func (n *Notifier) displayName(ctx context.Context, productID string) string {
	name, err := n.catalog.ProductName(ctx, productID)
	if err != nil {
		return productID
	}
	return name
}

func payloadError(e domain.Event) error {
	return fmt.Errorf("unexpected payload %T for event %s", e.Payload, e.Name)
}
