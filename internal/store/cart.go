package store

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/google/uuid"
)

// CartEvent is the process-wide "cart changed" signal. Consumers that want
// live updates (a cart badge, metrics) subscribe instead of polling.
type CartEvent struct {
	CustomerID uuid.UUID
}

// CartStore holds the ordered cart line sequence for each customer. It is
// injected into the checkout flow so tests can substitute the in-memory
// implementation for the Redis one.
type CartStore interface {
	Load(ctx context.Context, customerID uuid.UUID) ([]models.CartLine, error)
	Save(ctx context.Context, customerID uuid.UUID, lines []models.CartLine) error
	Clear(ctx context.Context, customerID uuid.UUID) error
	Subscribe() <-chan CartEvent
}

// notifier fans a cart change out to every subscriber. Sends never block:
// a subscriber that stopped draining just misses events.
type notifier struct {
	mu   sync.Mutex
	subs []chan CartEvent
}

func (n *notifier) subscribe() <-chan CartEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan CartEvent, 8)
	n.subs = append(n.subs, ch)

	return ch
}

func (n *notifier) notify(customerID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- CartEvent{CustomerID: customerID}:
		default:
		}
	}
}
