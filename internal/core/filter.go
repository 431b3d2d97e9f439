package core

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// CategoryPurchases matches every transaction whose title starts with the
	// purchases label.
	CategoryPurchases = "purchases"
	customPrefix      = "custom_"
	isoDay            = "2006-01-02"
)

// TransactionFilter narrows a ledger. Zero fields match everything.
type TransactionFilter struct {
	Category  string
	Search    string
	DateRange *DateRange
	MinAmount *int64
	MaxAmount *int64
}

// FilterTransactions returns the matching transactions, newest first.
// Undated transactions sort last. The input slice is not modified.
func FilterTransactions(txs []Transaction, f TransactionFilter, cats Categories) []Transaction {
	sorted := append([]Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	match := categoryMatcher(f.Category, cats)
	search := strings.ToLower(strings.TrimSpace(f.Search))
	from, to := dayBounds(f.DateRange)

	out := make([]Transaction, 0, len(sorted))
	for _, t := range sorted {
		if !match(t) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if !t.Date.IsZero() {
			if !from.IsZero() && t.Date.Before(from) {
				continue
			}
			if !to.IsZero() && !t.Date.Before(to) {
				continue
			}
		}
		if f.MinAmount != nil && t.Amount.Rials < *f.MinAmount {
			continue
		}
		if f.MaxAmount != nil && t.Amount.Rials > *f.MaxAmount {
			continue
		}
		out = append(out, t)
	}
	return out
}

func categoryMatcher(filter string, cats Categories) func(Transaction) bool {
	filter = strings.TrimSpace(filter)
	switch {
	case filter == "" || filter == FilterAll:
		return func(Transaction) bool { return true }
	case filter == CategoryPurchases:
		label := "اقلام خریدنی"
		if c, ok := cats.Lookup(CategoryPurchases); ok && c.Label != "" {
			label = c.Label
		}
		return func(t Transaction) bool {
			return t.Category == CategoryPurchases || strings.HasPrefix(t.Title, label)
		}
	case strings.HasPrefix(filter, customPrefix):
		name := strings.ReplaceAll(strings.TrimPrefix(filter, customPrefix), "_", " ")
		return func(t Transaction) bool {
			return t.Category == filter || t.Title == name
		}
	}
	label := ""
	if c, ok := cats.Lookup(filter); ok {
		label = c.Label
	}
	return func(t Transaction) bool {
		return t.Category == filter || (label != "" && t.Title == label)
	}
}

func matchesSearch(t Transaction, search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	if !t.Date.IsZero() && strings.Contains(t.Date.Format(isoDay), search) {
		return true
	}
	return strings.Contains(strconv.FormatInt(t.Amount.Rials, 10), search)
}

// dayBounds returns [from, to) where to is the day after the inclusive upper
// bound. Unparseable bounds are ignored.
func dayBounds(r *DateRange) (from, to time.Time) {
	if r == nil {
		return
	}
	if t, ok := ParseDate(r.From); ok {
		from = t
	}
	if t, ok := ParseDate(r.To); ok {
		to = t.AddDate(0, 0, 1)
	}
	return
}

// LedgerTotals summarizes a set of transactions.
type LedgerTotals struct {
	Total  Money
	Oldest string // ISO day, "" when no transaction is dated
	Newest string
	Count  int
}

// Totals sums txs and finds the oldest and newest dated transaction.
func Totals(txs []Transaction) LedgerTotals {
	var (
		out            LedgerTotals
		oldest, newest time.Time
	)
	for _, t := range txs {
		out.Total = out.Total.Add(t.Amount)
		out.Count++
		if t.Date.IsZero() {
			continue
		}
		if oldest.IsZero() || t.Date.Before(oldest) {
			oldest = t.Date
		}
		if newest.IsZero() || t.Date.After(newest) {
			newest = t.Date
		}
	}
	if !oldest.IsZero() {
		out.Oldest = oldest.Format(isoDay)
		out.Newest = newest.Format(isoDay)
	}
	return out
}
