package core

import (
	"errors"
	"strings"
	"time"
)

// FilterAll is the filter sentinel selecting every category.
const FilterAll = "all"

type (
	Money struct {
		Rials int64
	}

	// Category is an expense type a summary can be filtered by.
	Category struct {
		Value string
		Label string
	}

	// Categories is an ordered set of categories indexed by value.
	Categories struct {
		items []Category
		index map[string]int
	}

	Transaction struct {
		ID          string
		Title       string
		Description string
		Category    string
		Amount      Money
		Date        time.Time // zero when the transaction is undated
	}

	// DateRange is a caller-selected range. Bounds are raw input; "" means absent.
	DateRange struct {
		From string
		To   string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyValue    = errors.New("empty category value")
	ErrEmptyTitle    = errors.New("empty title")
)

// NewCategories builds the set keeping the first occurrence of each value.
// Blank values are skipped.
func NewCategories(cats ...Category) Categories {
	c := Categories{index: make(map[string]int, len(cats))}
	for _, cat := range cats {
		cat.Value = strings.TrimSpace(cat.Value)
		if cat.Value == "" {
			continue
		}
		if _, ok := c.index[cat.Value]; ok {
			continue
		}
		c.index[cat.Value] = len(c.items)
		c.items = append(c.items, cat)
	}
	return c
}

// Lookup returns the category with the given value.
func (c Categories) Lookup(value string) (Category, bool) {
	i, ok := c.index[value]
	if !ok {
		return Category{}, false
	}
	return c.items[i], true
}

// All returns a copy of the categories in insertion order.
func (c Categories) All() []Category {
	return append([]Category(nil), c.items...)
}

func (c Categories) Len() int {
	return len(c.items)
}

// DefaultCategories are the built-in building expense types.
func DefaultCategories() Categories {
	return NewCategories(
		Category{Value: "water_bill", Label: "قبض آب"},
		Category{Value: "electricity_bill", Label: "قبض برق"},
		Category{Value: "camera", Label: "دوربین"},
		Category{Value: "parking", Label: "پارکینگ"},
		Category{Value: "charge", Label: "شارژ"},
		Category{Value: "repair", Label: "تعمیرات"},
		Category{Value: "cleaning", Label: "نظافت"},
		Category{Value: CategoryPurchases, Label: "اقلام خریدنی"},
	)
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Value) == "" {
		return ErrEmptyValue
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if len(t.Description) > 500 {
		return errors.New("description too long (max 500 characters)")
	}
	if t.Amount.Rials < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Active reports whether a range was supplied at all.
func (r *DateRange) Active() bool {
	return r != nil
}
