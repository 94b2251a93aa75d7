package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrDescriptionLong  = errors.New("description too long (max 200 characters)")
)

// Money is a two-decimal currency value held as integer cents.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// NewExpense is the client-supplied payload for creating a record. It
// carries exactly the four user-entered fields; the record identifier,
// owner identity and timestamps are stamped by the store and must never
// appear here.
type NewExpense struct {
	Amount      Money
	Category    Category
	Description string
	Date        Date
}

func (ne NewExpense) Validate() error {
	if err := ne.Amount.Validate(); err != nil {
		return err
	}
	if !ne.Category.Valid() {
		return ErrUnknownCategory
	}
	desc := strings.TrimSpace(ne.Description)
	if desc == "" {
		return ErrEmptyDescription
	}
	if len(ne.Description) > 200 {
		return ErrDescriptionLong
	}
	return ne.Date.Validate()
}

// Expense is a stored record as returned by the store. Owner is set once
// at creation from the caller's authenticated identity and never changes.
type Expense struct {
	ID          string
	Owner       string
	Amount      Money
	Category    Category
	Description string
	Date        Date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
