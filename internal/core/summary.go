package core

// MonthSummary is the aggregation view-model for one month of records.
type MonthSummary struct {
	Total Money

	// ByCategory holds a key only for categories that appear in the
	// input; absent categories are omitted, never zero-filled.
	ByCategory map[Category]Money
}

// Summarize computes the month summary from a record set. It is a pure
// function: deterministic, order-independent, no side effects.
func Summarize(records []Expense) MonthSummary {
	s := MonthSummary{ByCategory: make(map[Category]Money)}
	for _, e := range records {
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)
	}
	return s
}

// CategoryAmount pairs a category with its aggregated amount for display.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// CategoryRows returns the per-category sums in the fixed display order
// of the closed category set, skipping categories with no records.
func (s MonthSummary) CategoryRows() []CategoryAmount {
	rows := make([]CategoryAmount, 0, len(s.ByCategory))
	for _, c := range Categories() {
		if amt, ok := s.ByCategory[c]; ok {
			rows = append(rows, CategoryAmount{Category: c, Amount: amt})
		}
	}
	return rows
}
