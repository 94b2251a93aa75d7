package core

import "testing"

func rec(cents int64, c Category) Expense {
	return Expense{Amount: Money{Cents: cents}, Category: c, Description: "x", Date: NewDate(2024, 1, 10)}
}

func TestSummarizeTotal(t *testing.T) {
	records := []Expense{
		rec(4550, CategoryGroceries),
		rec(1200, CategoryWater),
		rec(800, CategoryGroceries),
		rec(3000, CategoryGas),
	}
	s := Summarize(records)
	if s.Total.Cents != 9550 {
		t.Fatalf("total = %d, want 9550", s.Total.Cents)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	a := []Expense{rec(100, CategoryWater), rec(200, CategoryGas), rec(300, CategoryWater)}
	b := []Expense{rec(300, CategoryWater), rec(100, CategoryWater), rec(200, CategoryGas)}
	sa, sb := Summarize(a), Summarize(b)
	if sa.Total != sb.Total {
		t.Fatalf("totals differ: %d vs %d", sa.Total.Cents, sb.Total.Cents)
	}
	if len(sa.ByCategory) != len(sb.ByCategory) {
		t.Fatalf("category maps differ in size")
	}
	for c, amt := range sa.ByCategory {
		if sb.ByCategory[c] != amt {
			t.Fatalf("category %s differs: %d vs %d", c, amt.Cents, sb.ByCategory[c].Cents)
		}
	}
}

func TestSummarizeOmitsAbsentCategories(t *testing.T) {
	s := Summarize([]Expense{rec(500, CategoryElectricity)})
	if len(s.ByCategory) != 1 {
		t.Fatalf("expected 1 category, got %d", len(s.ByCategory))
	}
	if _, ok := s.ByCategory[CategoryGroceries]; ok {
		t.Fatalf("absent category must not be zero-filled")
	}
	if s.ByCategory[CategoryElectricity].Cents != 500 {
		t.Fatalf("electricity = %d, want 500", s.ByCategory[CategoryElectricity].Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 {
		t.Fatalf("empty total = %d, want 0", s.Total.Cents)
	}
	if len(s.ByCategory) != 0 {
		t.Fatalf("empty set must yield empty mapping, got %d keys", len(s.ByCategory))
	}
}

func TestCategoryRowsFixedOrder(t *testing.T) {
	s := Summarize([]Expense{
		rec(100, CategoryGas),
		rec(200, CategoryGroceries),
	})
	rows := s.CategoryRows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != CategoryGroceries || rows[1].Category != CategoryGas {
		t.Fatalf("rows out of display order: %v", rows)
	}
}
