package backend

import (
	"context"

	"homeledger/internal/core"
)

// Ports for the record store collaborator. The store stamps owner
// identity and timestamps at creation; callers pass the owner from the
// authenticated session, never inside the payload.
type (
	RecordCreator interface {
		Create(ctx context.Context, owner string, ne core.NewExpense) (core.Expense, error)
	}

	// MonthLister returns an owner's records for one month, ordered by
	// date descending.
	MonthLister interface {
		ListMonth(ctx context.Context, owner string, ym core.YearMonth) ([]core.Expense, error)
	}

	RecordDeleter interface {
		Delete(ctx context.Context, owner, id string) error
	}
)

// Store is the unified record store interface.
type Store interface {
	RecordCreator
	MonthLister
	RecordDeleter
}

// CleanupFunc releases store resources.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Type selects the record store implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
