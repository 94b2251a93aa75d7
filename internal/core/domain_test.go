package core

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"groceries", CategoryGroceries, true},
		{"Groceries", CategoryGroceries, true},
		{" water ", CategoryWater, true},
		{"electricity", CategoryElectricity, true},
		{"gas", CategoryGas, true},
		{"rent", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("ParseCategory(%q) = %q, %v", tc.in, got, err)
			}
		} else if !errors.Is(err, ErrUnknownCategory) {
			t.Fatalf("ParseCategory(%q) expected ErrUnknownCategory, got %v", tc.in, err)
		}
	}
}

func TestCategoryLabelsCoverClosedSet(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Fatalf("%q not valid", c)
		}
		if c.Label() == string(c) {
			t.Fatalf("%q has no display label", c)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -50}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestNewExpenseValidate(t *testing.T) {
	good := NewExpense{
		Amount:      Money{Cents: 4550},
		Category:    CategoryGroceries,
		Description: "Weekly shop",
		Date:        NewDate(2024, 3, 15),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []NewExpense{
		{Amount: Money{Cents: 0}, Category: CategoryGas, Description: "a", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Category: "rent", Description: "a", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Category: CategoryGas, Description: "  ", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Category: CategoryGas, Description: strings.Repeat("x", 201), Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Category: CategoryGas, Description: "a", Date: Date{}},
		{Amount: Money{Cents: 1}, Category: CategoryGas, Description: "a", Date: NewDate(2024, 2, 30)},
	}
	for i, ne := range bads {
		if err := ne.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
