// Package storage implements the record store: per-owner persistence of
// expense records. Owner identity is stamped here at creation from the
// caller's authenticated identity, never taken from the payload, and
// every statement carries an owner predicate so cross-owner reads and
// writes cannot happen at the SQL level.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/core"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create inserts a new record, stamping identifier, owner and
// timestamps server-side, and returns the stored record.
func (r *SQLiteRepository) Create(ctx context.Context, owner string, ne core.NewExpense) (core.Expense, error) {
	if owner == "" {
		return core.Expense{}, errors.New("owner identity required")
	}
	if err := ne.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	now := time.Now().UTC()
	e := core.Expense{
		ID:          uuid.NewString(),
		Owner:       owner,
		Amount:      ne.Amount,
		Category:    ne.Category,
		Description: ne.Description,
		Date:        ne.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, owner, amount_cents, category, description, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Owner, e.Amount.Cents, string(e.Category), e.Description, e.Date.String(), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"record_id", e.ID,
		"owner", e.Owner,
		"amount_cents", e.Amount.Cents,
		"category", e.Category,
		"date", e.Date.String())

	return e, nil
}

// ListMonth returns the owner's records whose date falls in the month,
// ordered by date descending then creation time descending. The month is
// the half-open window [first of month, first of next month); dates are
// zero-padded ISO text, so the comparison is chronological.
func (r *SQLiteRepository) ListMonth(ctx context.Context, owner string, ym core.YearMonth) ([]core.Expense, error) {
	start, end := ym.Window()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, amount_cents, category, description, date, created_at, updated_at
		 FROM expenses
		 WHERE owner = ? AND date >= ? AND date < ?
		 ORDER BY date DESC, created_at DESC`,
		owner, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("query month expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate month expenses: %w", err)
	}
	return out, nil
}

// Get returns a single record, owner-scoped.
func (r *SQLiteRepository) Get(ctx context.Context, owner, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner, amount_cents, category, description, date, created_at, updated_at
		 FROM expenses
		 WHERE owner = ? AND id = ?`,
		owner, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// Delete removes a record. A delete of another owner's record reports
// ErrNotFound, never the record's existence.
func (r *SQLiteRepository) Delete(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "record_id", id, "owner", owner)
	return nil
}

// ExpenseEvent is one row of the audit trail the event worker appends.
type ExpenseEvent struct {
	Action     string
	RecordID   string
	Owner      string
	Year       int
	Month      int
	OccurredAt time.Time
}

// AppendEvent records an expense event into the audit table.
func (r *SQLiteRepository) AppendEvent(ctx context.Context, ev ExpenseEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expense_events (action, record_id, owner, year, month, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Action, ev.RecordID, ev.Owner, ev.Year, ev.Month, ev.OccurredAt.UTC())
	if err != nil {
		return fmt.Errorf("insert expense event: %w", err)
	}
	return nil
}

// CountEvents returns the number of audit rows for an owner. Used by the
// worker's startup report and by tests.
func (r *SQLiteRepository) CountEvents(ctx context.Context, owner string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expense_events WHERE owner = ?`, owner).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expense events: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e        core.Expense
		category string
		date     string
	)
	err := row.Scan(&e.ID, &e.Owner, &e.Amount.Cents, &category, &e.Description, &date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	e.Category = core.Category(category)
	e.Date, err = core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	return e, nil
}
