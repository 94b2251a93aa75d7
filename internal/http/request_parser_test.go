package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"homeledger/internal/core"
)

func formRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestParseExpenseForm(t *testing.T) {
	form := url.Values{
		"amount":      {" 45,50 "},
		"category":    {" Groceries "},
		"description": {"  weekly shop "},
		"date":        {"2026-08-15"},
	}
	ne, err := ParseExpenseForm(formRequest(form))
	if err != nil {
		t.Fatalf("ParseExpenseForm: %v", err)
	}
	if ne.Amount.Cents != 4550 {
		t.Errorf("cents = %d, want 4550", ne.Amount.Cents)
	}
	if ne.Category != core.CategoryGroceries {
		t.Errorf("category = %q, want groceries", ne.Category)
	}
	if ne.Description != "weekly shop" {
		t.Errorf("description = %q, want trimmed", ne.Description)
	}
	if ne.Date.String() != "2026-08-15" {
		t.Errorf("date = %s, want 2026-08-15", ne.Date)
	}
}

func TestParseExpenseFormDefaultsDate(t *testing.T) {
	form := url.Values{
		"amount":      {"5.00"},
		"category":    {"gas"},
		"description": {"refill"},
	}
	ne, err := ParseExpenseForm(formRequest(form))
	if err != nil {
		t.Fatalf("ParseExpenseForm: %v", err)
	}
	if ne.Date != core.Today() {
		t.Errorf("date = %s, want today", ne.Date)
	}
}

func TestParseExpenseFormCollectsAllErrors(t *testing.T) {
	form := url.Values{
		"amount":      {"abc"},
		"category":    {"rent"},
		"description": {""},
	}
	_, err := ParseExpenseForm(formRequest(form))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"amount", "category", "description"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention the %s problem", msg, want)
		}
	}
}

func TestParseMonthParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=2026-03", nil)
	ym, err := ParseMonthParam(r)
	if err != nil {
		t.Fatalf("ParseMonthParam: %v", err)
	}
	if ym != (core.YearMonth{Year: 2026, Month: 3}) {
		t.Errorf("ym = %+v", ym)
	}

	r = httptest.NewRequest(http.MethodGet, "/ui/month-overview", nil)
	ym, err = ParseMonthParam(r)
	if err != nil {
		t.Fatalf("ParseMonthParam default: %v", err)
	}
	if ym != core.CurrentMonth() {
		t.Errorf("default ym = %+v, want current month", ym)
	}

	r = httptest.NewRequest(http.MethodGet, "/ui/month-overview?month=13-2026", nil)
	if _, err := ParseMonthParam(r); err == nil {
		t.Error("malformed month must be rejected")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  plain  ", "plain"},
		{"with\x00control\x07chars", "withcontrolchars"},
		{"keeps\ttabs", "keeps\ttabs"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := sanitizeInput(tc.in); got != tc.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
