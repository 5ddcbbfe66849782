package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/Arbath/toko-online/internal/core/domain"
)

// Handler reacts to a published event. Handlers run synchronously on the
// publisher's goroutine.
type Handler func(ctx context.Context, e domain.Event) error

// Bus dispatches events to handlers in registration order. There is no
// persistence, no retry, and no ordering across different event names.
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventName][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventName][]Handler)}
}

func (b *Bus) Subscribe(name domain.EventName, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish invokes every handler registered for name and returns only after
// the last one. A handler error stops dispatch and propagates to the caller;
// handlers needing isolation must wrap themselves.
func (b *Bus) Publish(ctx context.Context, name domain.EventName, payload any) error {
	b.mu.RLock()
	handlers := b.handlers[name]
	b.mu.RUnlock()

	e := domain.Event{Name: name, Entity: name.TriggerEntity(), Payload: payload}
	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			return fmt.Errorf("handle %s: %w", name, err)
		}
	}
	return nil
}
