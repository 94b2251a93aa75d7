package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"homeledger/internal/core"
	"homeledger/internal/storage"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	session := sessionFrom(r.Context())

	ne, err := ParseExpenseForm(r)
	if err != nil {
		// Validation failures keep the dialog open; the client never
		// clears the submitted values on a non-2xx response.
		writeFormError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.expenses.Create(r.Context(), session.UserID, ne)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save expense",
			"error", err,
			"owner", session.UserID,
			"category", string(ne.Category),
			"amount_cents", ne.Amount.Cents,
			"date", ne.Date.String(),
			"component", "expense_handler",
			"operation", "create")
		// Surface the store's own message ("insufficient permissions"
		// and friends) so the user sees what actually went wrong.
		writeFormError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ym := core.YearMonth{Year: created.Date.Year, Month: created.Date.Month}
	s.monthCache.Delete(monthCacheKey(session.UserID, ym))

	slog.InfoContext(r.Context(), "Expense created",
		"record_id", created.ID,
		"owner", session.UserID,
		"category", string(created.Category),
		"amount_cents", created.Amount.Cents,
		"date", created.Date.String(),
		"component", "expense_handler",
		"operation", "create")

	NewHTMXResponse().
		WithExpenseCreated(ym).
		WithFormReset().
		WithDialogClose().
		WithNotification("success", fmt.Sprintf("Recorded %s — %s", created.Category.Label(), formatEuros(created.Amount))).
		Write(w, r)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, http.MethodDelete) {
		return
	}

	session := sessionFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		writeFormError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	id := strings.TrimSpace(r.Form.Get("id"))
	if id == "" {
		writeFormError(w, http.StatusBadRequest, "Missing record id")
		return
	}
	ym, err := ParseMonthParam(r)
	if err != nil {
		writeFormError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	if err := s.expenses.Delete(r.Context(), session.UserID, id, ym); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeFormError(w, http.StatusNotFound, "Record not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete expense",
			"error", err,
			"owner", session.UserID,
			"record_id", id,
			"component", "expense_handler",
			"operation", "delete")
		writeFormError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.monthCache.Delete(monthCacheKey(session.UserID, ym))

	slog.InfoContext(r.Context(), "Expense deleted",
		"record_id", id,
		"owner", session.UserID,
		"month", ym.String(),
		"component", "expense_handler",
		"operation", "delete")

	NewHTMXResponse().
		WithExpenseDeleted(ym).
		Write(w, r)
}
