package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"homeledger/internal/config"
	"homeledger/internal/core"
	"homeledger/internal/identity"
	"homeledger/internal/services"
	"homeledger/internal/storage"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	cfg := &config.Config{
		Port:          "8082",
		SessionSecret: testSecret,
		SessionCookie: "hl_session",
		SessionMaxAge: time.Hour,
		CacheTTL:      time.Minute,
	}
	store := storage.NewMemoryStore()
	verifier := identity.NewVerifier(cfg.SessionSecret, cfg.SessionCookie)
	svc := services.NewExpenseService(store, nil)
	srv, err := NewServer(cfg, svc, verifier)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() {
		srv.limiter.Stop()
		srv.cacheManager.Stop()
	})
	return srv, store
}

func signIn(t *testing.T, srv *Server, r *http.Request, userID string) {
	t.Helper()
	token, err := srv.verifier.Issue(identity.Session{UserID: userID, Email: userID + "@example.com", Name: "Test User"}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	r.AddCookie(&http.Cookie{Name: srv.verifier.CookieName(), Value: token})
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestDashboardRedirectsHTMXWithoutSession(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview", nil)
	r.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if loc := w.Header().Get("HX-Redirect"); loc != "/login" {
		t.Errorf("HX-Redirect = %q, want /login", loc)
	}
}

func TestDashboardRendersMonthSelector(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if got := strings.Count(body, `<option value="20`); got != 12 {
		t.Errorf("month selector options = %d, want 12", got)
	}
	current := core.CurrentMonth().String()
	if !strings.Contains(body, `value="`+current+`" selected`) {
		t.Errorf("current month %s not selected in body", current)
	}
	if !strings.Contains(body, "No expenses recorded") {
		t.Error("empty month should render the placeholder")
	}
}

func TestMonthOverviewShowsTotalsAndBreakdown(t *testing.T) {
	srv, store := newTestServer(t)
	seed(t, store, "alice", "45.50", core.CategoryGroceries, "weekly shop", "2026-08-10")
	seed(t, store, "alice", "30.00", core.CategoryGas, "heating", "2026-08-12")
	seed(t, store, "alice", "12.25", core.CategoryGroceries, "bread", "2026-08-20")

	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=2026-08", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "€87.75") {
		t.Errorf("body missing month total €87.75:\n%s", body)
	}
	if !strings.Contains(body, "€57.75") {
		t.Error("body missing groceries subtotal €57.75")
	}
	if strings.Contains(body, "Water") || strings.Contains(body, "Electricity") {
		t.Error("categories without expenses must not appear in the breakdown")
	}
}

func TestMonthOverviewScopedToOwner(t *testing.T) {
	srv, store := newTestServer(t)
	seed(t, store, "bob", "99.99", core.CategoryElectricity, "bill", "2026-08-05")

	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=2026-08", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if strings.Contains(w.Body.String(), "99.99") {
		t.Error("alice must not see bob's expenses")
	}
}

func TestMonthOverviewDegradesOnStoreError(t *testing.T) {
	srv, store := newTestServer(t)
	store.ListErr = storageError("backend offline")

	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=2026-08", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the store fails", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "temporarily unavailable") {
		t.Error("degraded view should carry the unavailability notice")
	}
	if !strings.Contains(body, "No expenses recorded") {
		t.Error("degraded view should fall back to the empty placeholder")
	}
}

func TestMonthOverviewRejectsBadMonth(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=bogus", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestSignOutClearsCookie(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodPost, "/signout", nil)
	signIn(t, srv, r, "alice")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	cookies := w.Result().Cookies()
	var cleared bool
	for _, c := range cookies {
		if c.Name == srv.verifier.CookieName() && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("sign-out must expire the session cookie")
	}
}

// seed inserts an expense directly into the memory store.
func seed(t *testing.T, store *storage.MemoryStore, owner, amount string, cat core.Category, desc, date string) {
	t.Helper()
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	_, err = store.Create(context.Background(), owner, core.NewExpense{
		Amount:      core.Money{Cents: cents},
		Category:    cat,
		Description: desc,
		Date:        d,
	})
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
}

type storageError string

func (e storageError) Error() string { return string(e) }

// getAuthed performs an authenticated GET.
func getAuthed(t *testing.T, srv *Server, path, owner string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	signIn(t, srv, r, owner)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

// postForm builds an authenticated form POST.
func postForm(t *testing.T, srv *Server, path string, form url.Values, owner string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	signIn(t, srv, r, owner)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}
