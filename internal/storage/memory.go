package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"homeledger/internal/core"
)

// MemoryStore is an in-memory record store with the same owner-scoping
// contract as the SQLite repository. Used for development and tests.
type MemoryStore struct {
	mu    sync.Mutex
	seq   int
	items map[string][]core.Expense // keyed by owner

	// CreateErr, when set, makes Create fail; lets handler tests
	// exercise the store-failure path.
	CreateErr error
	// ListErr, when set, makes ListMonth fail.
	ListErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]core.Expense)}
}

func (s *MemoryStore) Create(_ context.Context, owner string, ne core.NewExpense) (core.Expense, error) {
	if s.CreateErr != nil {
		return core.Expense{}, s.CreateErr
	}
	if owner == "" {
		return core.Expense{}, errors.New("owner identity required")
	}
	if err := ne.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now().UTC()
	e := core.Expense{
		ID:          fmt.Sprintf("mem-%d", s.seq),
		Owner:       owner,
		Amount:      ne.Amount,
		Category:    ne.Category,
		Description: ne.Description,
		Date:        ne.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items[owner] = append(s.items[owner], e)
	return e, nil
}

func (s *MemoryStore) ListMonth(_ context.Context, owner string, ym core.YearMonth) ([]core.Expense, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.items[owner] {
		if ym.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[j].Date.Before(out[i].Date)
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[owner]
	for i, e := range list {
		if e.ID == id {
			s.items[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
