package services

import (
	"context"
	"errors"
	"testing"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/storage"
)

type recordingPublisher struct {
	published []*amqp.ExpenseEventMessage
	err       error
}

func (p *recordingPublisher) PublishExpenseEvent(_ context.Context, msg *amqp.ExpenseEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func testPayload() core.NewExpense {
	return core.NewExpense{
		Amount:      core.Money{Cents: 4550},
		Category:    core.CategoryGroceries,
		Description: "Weekly shop",
		Date:        core.NewDate(2024, 3, 15),
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)

	e, err := svc.Create(context.Background(), "user-1", testPayload())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.published))
	}
	ev := pub.published[0]
	if ev.Action != amqp.EventCreated || ev.RecordID != e.ID || ev.Owner != "user-1" {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Year != 2024 || ev.Month != 3 {
		t.Fatalf("event month = %d-%d", ev.Year, ev.Month)
	}
}

func TestCreateSucceedsWhenPublishFails(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)

	if _, err := svc.Create(context.Background(), "user-1", testPayload()); err != nil {
		t.Fatalf("create must not fail on publish error, got %v", err)
	}
}

func TestCreateWithNilPublisher(t *testing.T) {
	svc := NewExpenseService(storage.NewMemoryStore(), nil)
	if _, err := svc.Create(context.Background(), "user-1", testPayload()); err != nil {
		t.Fatalf("create with nil publisher: %v", err)
	}
}

func TestCreateStoreFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.CreateErr = errors.New("insufficient permissions")
	svc := NewExpenseService(store, &recordingPublisher{})

	_, err := svc.Create(context.Background(), "user-1", testPayload())
	if err == nil {
		t.Fatalf("expected store error")
	}
}

func TestListMonth(t *testing.T) {
	svc := NewExpenseService(storage.NewMemoryStore(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", testPayload()); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListMonth(ctx, "user-1", core.YearMonth{Year: 2024, Month: 3})
	if err != nil || len(got) != 1 {
		t.Fatalf("list = %d records, %v", len(got), err)
	}
	if got, err := svc.ListMonth(ctx, "user-1", core.YearMonth{Year: 2024, Month: 4}); err != nil || len(got) != 0 {
		t.Fatalf("other month = %d records, %v", len(got), err)
	}
}

func TestDeletePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)
	ctx := context.Background()

	e, err := svc.Create(ctx, "user-1", testPayload())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ym := core.YearMonth{Year: 2024, Month: 3}
	if err := svc.Delete(ctx, "user-1", e.ID, ym); err != nil {
		t.Fatalf("delete: %v", err)
	}
	last := pub.published[len(pub.published)-1]
	if last.Action != amqp.EventDeleted || last.RecordID != e.ID {
		t.Fatalf("delete event = %+v", last)
	}

	if err := svc.Delete(ctx, "user-1", "missing", ym); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
