package core

import (
	"fmt"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DatePlaceholder is shown when a date is absent.
const DatePlaceholder = "—"

type Calendar string

const (
	Jalali    Calendar = "jalali"
	Gregorian Calendar = "gregorian"
)

type DateStatus int

const (
	DateAbsent DateStatus = iota
	DateFormatted
	// DateUnparsed means Text echoes the original input.
	DateUnparsed
)

func (s DateStatus) String() string {
	switch s {
	case DateAbsent:
		return "absent"
	case DateFormatted:
		return "formatted"
	case DateUnparsed:
		return "unparsed"
	}
	return fmt.Sprintf("DateStatus(%d)", int(s))
}

type FormattedDate struct {
	Text   string
	Status DateStatus
}

// inputLayouts are tried in order by ParseDate.
var inputLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses a caller-supplied date into a calendar day.
// The wall-clock date of the input is kept; time of day and zone are dropped.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders raw as YYYY/MM/DD in the calendar.
//
// Blank input yields DatePlaceholder. Input that cannot be parsed, or that
// falls outside the calendar, is returned unchanged with DateUnparsed;
// FormatDate never fails.
func (c Calendar) FormatDate(raw string) FormattedDate {
	if strings.TrimSpace(raw) == "" {
		return FormattedDate{Text: DatePlaceholder, Status: DateAbsent}
	}
	t, ok := ParseDate(raw)
	if !ok {
		return FormattedDate{Text: raw, Status: DateUnparsed}
	}
	text, ok := c.FormatTime(t)
	if !ok {
		return FormattedDate{Text: raw, Status: DateUnparsed}
	}
	return FormattedDate{Text: text, Status: DateFormatted}
}

// FormatTime renders the calendar day of t. It reports false when t has no
// valid day in the calendar, such as Gregorian dates before the Jalali epoch.
func (c Calendar) FormatTime(t time.Time) (string, bool) {
	y, m, d := t.Year(), int(t.Month()), t.Day()
	if c != Gregorian {
		pt := ptime.New(time.Date(y, t.Month(), d, 12, 0, 0, 0, time.UTC))
		y, m, d = pt.Year(), int(pt.Month()), pt.Day()
	}
	if y < 1 || m < 1 || d < 1 {
		return "", false
	}
	return fmt.Sprintf("%04d/%02d/%02d", y, m, d), true
}

// ParseCalendar maps a configuration value to a Calendar.
func ParseCalendar(s string) (Calendar, error) {
	switch Calendar(strings.ToLower(strings.TrimSpace(s))) {
	case Jalali, "":
		return Jalali, nil
	case Gregorian:
		return Gregorian, nil
	}
	return "", fmt.Errorf("unknown calendar %q", s)
}
