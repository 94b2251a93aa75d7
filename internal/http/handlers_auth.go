package http

import (
	"log/slog"
	"net/http"
)

// handleLogin shows the sign-in page. Credentials never pass through
// this service: the identity provider authenticates the user and hands
// back a signed token that the session cookie carries.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	// Already signed in: straight to the dashboard.
	if _, err := s.verifier.SessionFromRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "login.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render login page", "error", err)
	}
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	http.SetCookie(w, s.verifier.ClearCookie())
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
