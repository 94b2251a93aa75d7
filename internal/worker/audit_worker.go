// Package worker consumes expense events from the message queue and
// appends them to the audit trail. Publishing is best-effort on the
// server side; the durable queue is what makes the trail catch up
// after worker downtime.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/log"
	"homeledger/internal/storage"
)

// EventSink is where processed events land.
type EventSink interface {
	AppendEvent(ctx context.Context, ev storage.ExpenseEvent) error
}

type AuditWorker struct {
	sink EventSink
}

func NewAuditWorker(sink EventSink) *AuditWorker {
	return &AuditWorker{sink: sink}
}

// HandleEvent validates and persists one event. Returning an error
// makes the consumer nack-and-requeue, so only transient failures
// should bubble up; malformed messages are dropped with a log line.
func (w *AuditWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	if msg.RecordID == "" || msg.Owner == "" {
		slog.WarnContext(ctx, "Dropping expense event without record id or owner",
			"action", string(msg.Action),
			log.FieldRecordID, msg.RecordID,
			log.FieldComponent, log.ComponentWorker)
		return nil
	}
	if msg.Month < 1 || msg.Month > 12 {
		slog.WarnContext(ctx, "Dropping expense event with invalid month",
			log.FieldRecordID, msg.RecordID,
			log.FieldYear, msg.Year,
			log.FieldMonth, msg.Month,
			log.FieldComponent, log.ComponentWorker)
		return nil
	}

	ev := storage.ExpenseEvent{
		Action:     string(msg.Action),
		RecordID:   msg.RecordID,
		Owner:      msg.Owner,
		Year:       msg.Year,
		Month:      msg.Month,
		OccurredAt: msg.Timestamp,
	}
	if err := w.sink.AppendEvent(ctx, ev); err != nil {
		return fmt.Errorf("append expense event %s: %w", msg.RecordID, err)
	}

	fields := log.NewFields().
		WithRecord(msg.Owner, msg.RecordID).
		WithMonth(msg.Year, msg.Month).
		WithOperation(string(msg.Action)).
		WithComponent(log.ComponentWorker)
	slog.InfoContext(ctx, "Expense event recorded", fields.ToSlice()...)
	return nil
}
