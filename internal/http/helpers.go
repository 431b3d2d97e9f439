package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"

	"melking/internal/core"
)

// maxQueryValue caps free-text query values.
const maxQueryValue = 200

// summaryQuery is the raw filter as the page submitted it. It is echoed back
// into the filter form.
type summaryQuery struct {
	Filter string
	Search string
	From   string
	To     string
	Min    string
	Max    string
}

func readSummaryQuery(q url.Values) summaryQuery {
	return summaryQuery{
		Filter: sanitizeInput(q.Get("filter")),
		Search: sanitizeInput(q.Get("q")),
		From:   sanitizeInput(q.Get("from")),
		To:     sanitizeInput(q.Get("to")),
		Min:    sanitizeInput(q.Get("min")),
		Max:    sanitizeInput(q.Get("max")),
	}
}

// TransactionFilter converts the query. The date range is present when either
// bound is non-empty; an amount that does not parse is an error.
func (q summaryQuery) TransactionFilter() (core.TransactionFilter, error) {
	f := core.TransactionFilter{
		Category: q.Filter,
		Search:   q.Search,
	}
	if f.Category == "" {
		f.Category = core.FilterAll
	}
	if q.From != "" || q.To != "" {
		f.DateRange = &core.DateRange{From: q.From, To: q.To}
	}

	var err error
	if f.MinAmount, err = parseOptionalAmount("min", q.Min); err != nil {
		return core.TransactionFilter{}, err
	}
	if f.MaxAmount, err = parseOptionalAmount("max", q.Max); err != nil {
		return core.TransactionFilter{}, err
	}
	return f, nil
}

func parseOptionalAmount(name, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := core.ParseAmount(raw)
	if err != nil {
		return nil, fmt.Errorf("%s amount %q: %w", name, raw, err)
	}
	return &v, nil
}

// sanitizeInput removes control characters, trims whitespace and caps length.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	if r := []rune(s); len(r) > maxQueryValue {
		s = string(r[:maxQueryValue])
	}
	return s
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
