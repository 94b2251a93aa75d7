package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"homeledger/internal/cache"
	"homeledger/internal/config"
	"homeledger/internal/core"
	"homeledger/internal/identity"
	"homeledger/internal/middleware/ratelimit"
	"homeledger/internal/middleware/security"
	"homeledger/internal/middleware/trace"
	"homeledger/internal/services"
	"homeledger/web"
)

type contextKey string

const sessionKey contextKey = "session"

// Server serves the dashboard UI and the expense endpoints. Every data
// route runs behind requireSession; the session's user id scopes all
// reads and writes.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	expenses   *services.ExpenseService
	verifier   *identity.Verifier
	templates  *template.Template

	monthCache   *cache.LRUCache[monthView]
	cacheManager *cache.Manager
	flight       singleflight.Group

	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware
	detector *security.Detector
}

// NewServer wires handlers, middleware and the per-month view cache.
func NewServer(cfg *config.Config, expenses *services.ExpenseService, verifier *identity.Verifier) (*Server, error) {
	funcs := template.FuncMap{
		"euros": formatEuros,
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:        cfg,
		expenses:   expenses,
		verifier:   verifier,
		templates:  tmpl,
		monthCache: cache.NewLRUCache[monthView](256, cfg.CacheTTL),
		limiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:   security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ExtractClientIP)

	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.monthCache)
	s.cacheManager.StartCleanup(time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/signout", s.handleSignOut)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	staticCache := security.StaticAssetMiddleware(3600)
	mux.Handle("/static/", staticCache(http.FileServer(http.FS(web.StaticFS))))

	mux.Handle("/", s.requireSession(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("/ui/month-overview", s.requireSession(http.HandlerFunc(s.handleMonthOverview)))
	mux.Handle("/expenses", s.requireSession(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("/expenses/delete", s.requireSession(http.HandlerFunc(s.handleDeleteExpense)))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.rateLimitMiddleware(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	s.cacheManager.Stop()
	return s.httpServer.Shutdown(ctx)
}

// requireSession authenticates the request and stashes the session in
// the context. Browsers get redirected to the sign-in page; htmx
// requests get an HX-Redirect so the whole page navigates instead of
// swapping a fragment.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.verifier.SessionFromRequest(r)
		if err != nil {
			if !errors.Is(err, identity.ErrNoSession) {
				slog.WarnContext(r.Context(), "Rejected invalid session", "error", err, "path", r.URL.Path)
			}
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session placed by requireSession. Handlers
// behind the middleware can rely on it being present.
func sessionFrom(ctx context.Context) identity.Session {
	session, _ := ctx.Value(sessionKey).(identity.Session)
	return session
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := s.detector.ExtractClientIP(r)
		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", ip, "path", r.URL.Path, "user_agent", r.Header.Get("User-Agent"))
		}
		if !s.limiter.Allow(ip) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// Readiness means the store answers for an arbitrary month window.
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if _, err := s.expenses.ListMonth(ctx, "readyz-probe", core.CurrentMonth()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness probe failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
