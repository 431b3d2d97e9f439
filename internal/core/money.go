// Package core provides money parsing and formatting utilities.
//
// Amounts are whole rials. Display uses comma thousands separators, which is
// how the summary card has always shown them regardless of UI language.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormattedAmount keeps the final value next to its display text so the
// count-up animation can target Value while tests assert on Text.
type FormattedAmount struct {
	Value int64
	Text  string
}

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount groups thousands with commas, e.g. 1000000 -> "1,000,000".
func FormatAmount(rials int64) FormattedAmount {
	return FormattedAmount{Value: rials, Text: amountPrinter.Sprintf("%d", rials)}
}

// ParseAmount parses a non-negative whole rial amount.
//
// Thousands separators (comma, Arabic comma, space) and Persian or Arabic-Indic
// digits are accepted, so "۱٬۰۰۰" and "1,000" both parse to 1000.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ',' || r == '٬' || r == '،' || r == ' ':
			continue
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		default:
			return 0, ErrInvalidAmount
		}
	}
	if b.Len() == 0 {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Rials: m.Rials + o.Rials}
}
