package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	v := NewVerifier(testSecret, "hl_session")
	want := Session{UserID: "user-1", Email: "a@example.com", Name: "Ada"}
	token, err := v.Issue(want, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := v.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != want {
		t.Fatalf("session = %+v, want %+v", got, want)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	v := NewVerifier(testSecret, "hl_session")
	token, err := v.Issue(Session{UserID: "user-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := v.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewVerifier("another-secret-another-secret-xx", "hl_session")
	token, err := issuer.Issue(Session{UserID: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	v := NewVerifier(testSecret, "hl_session")
	if _, err := v.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestSessionFromRequest(t *testing.T) {
	v := NewVerifier(testSecret, "hl_session")
	token, err := v.Issue(Session{UserID: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "hl_session", Value: token})
		s, err := v.SessionFromRequest(r)
		if err != nil || s.UserID != "user-1" {
			t.Fatalf("session = %+v, %v", s, err)
		}
	})

	t.Run("bearer", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		s, err := v.SessionFromRequest(r)
		if err != nil || s.UserID != "user-1" {
			t.Fatalf("session = %+v, %v", s, err)
		}
	})

	t.Run("absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := v.SessionFromRequest(r); !errors.Is(err, ErrNoSession) {
			t.Fatalf("expected ErrNoSession, got %v", err)
		}
	})
}

func TestClearCookie(t *testing.T) {
	v := NewVerifier(testSecret, "hl_session")
	c := v.ClearCookie()
	if c.Name != "hl_session" || c.MaxAge != -1 || c.Value != "" {
		t.Fatalf("clear cookie = %+v", c)
	}
}
