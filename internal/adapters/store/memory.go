package store

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"insquote/internal/domain"
)

// MemoryStore implements ports.QuoteStore in memory. It backs the local
// profile and tests; quotes do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	quotes map[int64]*domain.Quote

	// now is overridable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory quote store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		quotes: make(map[int64]*domain.Quote),
		now:    time.Now,
	}
}

// Insert stores a copy of the quote and fills its ID and CreatedAt.
// Implements ports.QuoteStore.
func (s *MemoryStore) Insert(_ context.Context, quote *domain.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quote.ID = s.nextID
	s.nextID++
	quote.CreatedAt = s.now().UTC()

	stored := *quote
	s.quotes[stored.ID] = &stored

	return nil
}

// GetByID retrieves a quote by its identifier. Implements ports.QuoteStore.
func (s *MemoryStore) GetByID(_ context.Context, id int64) (*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quote, ok := s.quotes[id]
	if !ok {
		return nil, domain.NewNotFoundError("quote", strconv.FormatInt(id, 10))
	}

	copied := *quote

	return &copied, nil
}

// List returns all quotes, newest first. Implements ports.QuoteStore.
func (s *MemoryStore) List(_ context.Context) ([]*domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes := make([]*domain.Quote, 0, len(s.quotes))
	for _, quote := range s.quotes {
		copied := *quote
		quotes = append(quotes, &copied)
	}

	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].ID > quotes[j].ID
	})

	return quotes, nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *MemoryStore) Name() string {
	return "memory"
}

// Check always succeeds. Implements ports.HealthChecker.
func (s *MemoryStore) Check(_ context.Context) error {
	return nil
}
