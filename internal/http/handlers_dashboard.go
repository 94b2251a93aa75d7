package http

import (
	"log/slog"
	"net/http"

	"homeledger/internal/core"
)

// monthView is everything the month overview fragment needs: the raw
// records plus the derived totals. Cached per owner and month.
type monthView struct {
	Month    core.YearMonth
	Expenses []core.Expense
	Summary  core.MonthSummary
	Rows     []core.CategoryAmount
	Degraded bool
}

// HasExpenses reports whether the month has anything to show.
func (v monthView) HasExpenses() bool {
	return len(v.Expenses) > 0
}

// monthOption is one entry of the trailing twelve-month selector.
type monthOption struct {
	Value    string
	Label    string
	Selected bool
}

type dashboardView struct {
	UserName  string
	UserEmail string
	Months    []monthOption
	Selected  core.YearMonth
	Overview  monthView
}

// loadMonthView fetches one owner-month of records and derives the
// summary. Concurrent requests for the same owner-month share one
// store round trip. A store failure degrades to an empty view rather
// than an error page; the failure is logged and flagged so the UI can
// say so.
func (s *Server) loadMonthView(r *http.Request, owner string, ym core.YearMonth) monthView {
	key := monthCacheKey(owner, ym)
	if cached, ok := s.monthCache.Get(key); ok {
		return cached
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		records, err := s.expenses.ListMonth(r.Context(), owner, ym)
		if err != nil {
			return nil, err
		}
		summary := core.Summarize(records)
		view := monthView{
			Month:    ym,
			Expenses: records,
			Summary:  summary,
			Rows:     summary.CategoryRows(),
		}
		s.monthCache.Set(key, view)
		return view, nil
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load month of expenses",
			"error", err,
			"owner", owner,
			"month", ym.String(),
			"component", "dashboard",
			"operation", "list_month")
		return monthView{Month: ym, Degraded: true}
	}
	return v.(monthView)
}

// monthOptions builds the trailing twelve months, newest first, with
// the requested month marked. Entry zero is always the current month.
func monthOptions(selected core.YearMonth) []monthOption {
	months := core.TrailingMonths(core.Today(), 12)
	opts := make([]monthOption, 0, len(months))
	for _, ym := range months {
		opts = append(opts, monthOption{
			Value:    ym.String(),
			Label:    ym.Label(),
			Selected: ym == selected,
		})
	}
	return opts
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	session := sessionFrom(r.Context())
	ym, err := ParseMonthParam(r)
	if err != nil {
		slog.WarnContext(r.Context(), "Invalid month parameter", "error", err)
		ym = core.CurrentMonth()
	}

	view := dashboardView{
		UserName:  session.Name,
		UserEmail: session.Email,
		Months:    monthOptions(ym),
		Selected:  ym,
		Overview:  s.loadMonthView(r, session.UserID, ym),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render dashboard", "error", err)
	}
}

// handleMonthOverview renders just the overview fragment. The month
// selector and the expense:created/deleted events both target it.
func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	session := sessionFrom(r.Context())
	ym, err := ParseMonthParam(r)
	if err != nil {
		writeFormError(w, http.StatusBadRequest, "Invalid month")
		return
	}

	view := s.loadMonthView(r, session.UserID, ym)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "month_overview.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render month overview", "error", err)
	}
}
