package core

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the closed set of expense categories.
type Category string

const (
	CategoryGroceries   Category = "groceries"
	CategoryWater       Category = "water"
	CategoryElectricity Category = "electricity"
	CategoryGas         Category = "gas"
)

var ErrUnknownCategory = errors.New("unknown category")

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryGroceries, CategoryWater, CategoryElectricity, CategoryGas}
}

// ParseCategory maps free-form input onto the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryGroceries:
		return CategoryGroceries, nil
	case CategoryWater:
		return CategoryWater, nil
	case CategoryElectricity:
		return CategoryElectricity, nil
	case CategoryGas:
		return CategoryGas, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryWater, CategoryElectricity, CategoryGas:
		return true
	}
	return false
}

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryGroceries:
		return "Groceries"
	case CategoryWater:
		return "Water"
	case CategoryElectricity:
		return "Electricity"
	case CategoryGas:
		return "Gas"
	}
	return string(c)
}

// Icon returns the emoji shown on the category card.
func (c Category) Icon() string {
	switch c {
	case CategoryGroceries:
		return "🛒"
	case CategoryWater:
		return "💧"
	case CategoryElectricity:
		return "💡"
	case CategoryGas:
		return "🔥"
	}
	return "💳"
}

func (c Category) String() string {
	return string(c)
}
