package domain

import "fmt"

// InvalidTransitionError reports a lifecycle event fired in a state where it
// is not legal. The order is left unchanged.
type InvalidTransitionError struct {
	Event string
	State OrderState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid event %s in state %s", e.Event, e.State)
}

// InsufficientStockError reports a decrement that would take stock negative.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d, available %d)",
		e.ProductID, e.Requested, e.Available)
}

// ValidationError reports a caller bug: an argument outside its legal range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
