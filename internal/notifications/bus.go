package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sdtech_backend/pkg/utils"
)

// Event names published by the services.
const (
	EventLowStock           = "onLowStock"
	EventPromotionActivated = "onPromotionActivated"
)

// Handler receives one published event.
type Handler func(ctx context.Context, event Event) error

// Event is what subscribers receive and what the external sinks serialize.
type Event struct {
	Name       string      `json:"event"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Notifier is the publishing side used by services.
type Notifier interface {
	Notify(ctx context.Context, event string, payload interface{})
}

type subscription struct {
	name    string
	handler Handler
}

// Bus is an in-process fan-out. Handlers run synchronously in registration order;
// a failing or panicking handler is logged and does not stop the others.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers handler under a subscriber name for event.
func (b *Bus) Subscribe(event, name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[event] = append(b.subs[event], subscription{name: name, handler: handler})
}

// Notify never returns an error: a publish failure must not affect the write that caused it.
func (b *Bus) Notify(ctx context.Context, event string, payload interface{}) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[event]...)
	b.mu.RUnlock()

	ev := Event{Name: event, Payload: payload, OccurredAt: time.Now().UTC()}
	for _, s := range subs {
		if err := dispatch(ctx, s, ev); err != nil {
			utils.LogError(err, fmt.Sprintf("Notification subscriber %q failed for %s", s.name, event))
			continue
		}
		utils.LogDebug("Notification delivered", map[string]interface{}{"event": event, "subscriber": s.name})
	}
}

func dispatch(ctx context.Context, s subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.handler(ctx, ev)
}
