package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the three item variants in the catalog.
type Kind int

const (
	KindGeneric Kind = iota
	KindDrink
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindDrink:
		return "drink"
	case KindFood:
		return "food"
	default:
		return "generic"
	}
}

// Item is one catalog entry. The store owns the canonical instance;
// everything else refers to it by ID.
type Item struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Stock int

	Kind   Kind
	Liters float64   // drink only, > 0
	Expiry time.Time // food only, required
}

// Expired reports whether a food item is past its expiry date.
// Non-food items never expire.
func (it *Item) Expired(now time.Time) bool {
	return it.Kind == KindFood && now.After(it.Expiry)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (it *Item) validate() error {
	if it.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if containsSep(it.Name) {
		return &ValidationError{Field: "name", Reason: "must not contain ';'"}
	}
	if it.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if it.Stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	switch it.Kind {
	case KindDrink:
		if it.Liters <= 0 {
			return &ValidationError{Field: "liters", Reason: "must be greater than zero"}
		}
	case KindFood:
		if it.Expiry.IsZero() {
			return &ValidationError{Field: "expiry", Reason: "date is required"}
		}
	}
	return nil
}

func containsSep(s string) bool {
	for _, r := range s {
		if r == ';' {
			return true
		}
	}
	return false
}
