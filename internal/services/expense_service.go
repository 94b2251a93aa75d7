// Package services orchestrates expense operations across the record
// store and the event bus.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/backend"
	"homeledger/internal/core"
)

// EventPublisher publishes record change events. Nil disables publishing.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
}

// ExpenseService couples the record store with best-effort event
// publishing. The store write always comes first; an event failure is
// logged and never fails the user's request.
type ExpenseService struct {
	store  backend.Store
	events EventPublisher
}

func NewExpenseService(store backend.Store, events EventPublisher) *ExpenseService {
	return &ExpenseService{store: store, events: events}
}

// Create validates and stores a new record for the owner, then
// publishes an expense.created event.
func (s *ExpenseService) Create(ctx context.Context, owner string, ne core.NewExpense) (core.Expense, error) {
	e, err := s.store.Create(ctx, owner, ne)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEventMessage(amqp.EventCreated, e.ID, e.Owner, e.Date.Year, e.Date.Month))
	return e, nil
}

// ListMonth returns the owner's records for the month, newest first.
func (s *ExpenseService) ListMonth(ctx context.Context, owner string, ym core.YearMonth) ([]core.Expense, error) {
	records, err := s.store.ListMonth(ctx, owner, ym)
	if err != nil {
		return nil, fmt.Errorf("list month expenses: %w", err)
	}
	return records, nil
}

// Delete removes an owner's record and publishes an expense.deleted
// event for the month the caller was viewing.
func (s *ExpenseService) Delete(ctx context.Context, owner, id string, ym core.YearMonth) error {
	if err := s.store.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEventMessage(amqp.EventDeleted, id, owner, ym.Year, ym.Month))
	return nil
}

func (s *ExpenseService) publish(ctx context.Context, msg *amqp.ExpenseEventMessage) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event publishing disabled, skipping", "action", msg.Action, "record_id", msg.RecordID)
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", msg.Action,
			"record_id", msg.RecordID,
			"error", err)
	}
}
