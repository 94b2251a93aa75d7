package core

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidMonth = errors.New("invalid month")
)

// Date is a calendar date with no time component. The string form is
// zero-padded ISO (YYYY-MM-DD), so lexicographic order on stored values
// equals chronological order.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in local time.
func Today() Date {
	return DateOf(time.Now())
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Validate rejects dates that time.Date would silently normalize
// (e.g. February 30 becoming March 2).
func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: zero date", ErrInvalidDate)
	}
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidMonth
	}
	t := d.Time()
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	return nil
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// YearMonth identifies a single month for the selector and queries.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// CurrentMonth returns the month containing the current local time.
func CurrentMonth() YearMonth {
	return YearMonthOf(time.Now())
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Label returns a human-readable form like "March 2024".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s %d", time.Month(ym.Month).String(), ym.Year)
}

// Validate checks the month is in range.
func (ym YearMonth) Validate() error {
	if ym.Month < 1 || ym.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Contains reports whether d falls within the month.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

// Window returns the half-open date range [first of month, first of next
// month) covering the month. Both bounds are exact calendar dates; together
// with the ISO string form this keeps month-boundary queries correct for
// every month length.
func (ym YearMonth) Window() (start, end Date) {
	first := time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	return DateOf(first), DateOf(next)
}

// Prev returns the preceding month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == 1 {
		return YearMonth{Year: ym.Year - 1, Month: 12}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// TrailingMonths returns n months ending at the month containing from:
// entry 0 is that month, entry n-1 is n-1 months prior, strictly
// decreasing. Subtraction is anchored at the first of the month so a
// late-month date cannot skew the result.
func TrailingMonths(from Date, n int) []YearMonth {
	out := make([]YearMonth, 0, n)
	ym := YearMonth{Year: from.Year, Month: from.Month}
	for i := 0; i < n; i++ {
		out = append(out, ym)
		ym = ym.Prev()
	}
	return out
}
