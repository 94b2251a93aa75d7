package http

import (
	"fmt"
	"strings"

	"homeledger/internal/core"
)

// sanitizeInput trims whitespace and strips control characters from
// user-provided form values before they reach the domain layer.
func sanitizeInput(input string) string {
	trimmed := strings.TrimSpace(input)
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if r < 32 && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatEuros renders an amount in cents as a euro string, e.g. "€45.50".
func formatEuros(m core.Money) string {
	return "€" + m.Decimal()
}

// monthCacheKey builds the cache key for a single owner's month of data.
func monthCacheKey(owner string, ym core.YearMonth) string {
	return fmt.Sprintf("%s|%s", owner, ym)
}
