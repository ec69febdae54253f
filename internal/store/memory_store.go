package store

import (
	"context"
	"sync"

	"github.com/aaravmahajanofficial/hotel-booking-platform/internal/models"
	"github.com/google/uuid"
)

// MemoryCartStore is the in-memory CartStore used by tests and local runs
// without Redis.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID][]models.CartLine
	notifier
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[uuid.UUID][]models.CartLine)}
}

func (s *MemoryCartStore) Load(_ context.Context, customerID uuid.UUID) ([]models.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.carts[customerID]
	if !ok {
		return []models.CartLine{}, nil
	}

	// callers must not be able to mutate the stored sequence
	out := make([]models.CartLine, len(lines))
	copy(out, lines)

	return out, nil
}

func (s *MemoryCartStore) Save(_ context.Context, customerID uuid.UUID, lines []models.CartLine) error {
	s.mu.Lock()
	stored := make([]models.CartLine, len(lines))
	copy(stored, lines)
	s.carts[customerID] = stored
	s.mu.Unlock()

	s.notify(customerID)

	return nil
}

func (s *MemoryCartStore) Clear(_ context.Context, customerID uuid.UUID) error {
	s.mu.Lock()
	delete(s.carts, customerID)
	s.mu.Unlock()

	s.notify(customerID)

	return nil
}

func (s *MemoryCartStore) Subscribe() <-chan CartEvent {
	return s.subscribe()
}
