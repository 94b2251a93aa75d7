package http

import (
	"fmt"
	"net/http"
	"strings"

	"homeledger/internal/core"
)

// ParseMonthParam reads the "month" query or form parameter (YYYY-MM).
// An absent parameter falls back to the current month; a malformed one
// is an error so callers can reject the request instead of guessing.
func ParseMonthParam(r *http.Request) (core.YearMonth, error) {
	raw := strings.TrimSpace(r.FormValue("month"))
	if raw == "" {
		return core.CurrentMonth(), nil
	}
	ym, err := core.ParseYearMonth(raw)
	if err != nil {
		return core.YearMonth{}, fmt.Errorf("invalid month parameter %q: %w", raw, err)
	}
	return ym, nil
}

// ParseExpenseForm turns a submitted entry form into a NewExpense payload.
// Field-level problems are collected into a single error so the form can
// show everything wrong at once.
func ParseExpenseForm(r *http.Request) (core.NewExpense, error) {
	if err := r.ParseForm(); err != nil {
		return core.NewExpense{}, fmt.Errorf("parse form: %w", err)
	}

	var errs []error

	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		errs = append(errs, fmt.Errorf("amount: %w", err))
	}

	category, err := core.ParseCategory(r.Form.Get("category"))
	if err != nil {
		errs = append(errs, err)
	}

	description := sanitizeInput(r.Form.Get("description"))
	if description == "" {
		errs = append(errs, core.ErrEmptyDescription)
	}

	date := core.Today()
	if raw := strings.TrimSpace(r.Form.Get("date")); raw != "" {
		date, err = core.ParseDate(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("date: %w", err))
		}
	}

	if len(errs) > 0 {
		return core.NewExpense{}, joinErrors(errs)
	}

	ne := core.NewExpense{
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := ne.Validate(); err != nil {
		return core.NewExpense{}, err
	}
	return ne, nil
}

func joinErrors(errs []error) error {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}

// RequireMethod rejects requests with the wrong HTTP method. Returns
// true when the request may proceed.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
	return false
}
