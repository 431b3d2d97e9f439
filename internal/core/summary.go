package core

// Labels holds the display strings of the summary card.
type Labels struct {
	TotalCost    string
	Currency     string
	Balance      string
	DateBlock    string
	From         string
	To           string
	ActiveFilter string
	DateHint     string

	// Host page strings.
	AllCategories string
	Search        string
	Apply         string
	Clear         string
	Unavailable   string
}

// DefaultLabels are the Persian strings the card ships with.
func DefaultLabels() Labels {
	return Labels{
		TotalCost:    "مجموع هزینه",
		Currency:     "ریال",
		Balance:      "موجودی صندوق",
		DateBlock:    "آخرین تاریخ",
		From:         "از تاریخ",
		To:           "تا تاریخ",
		ActiveFilter: "فیلتر فعال",
		DateHint:     "کلیک کنید برای فیلتر بر اساس تاریخ",

		AllCategories: "همه",
		Search:        "جستجو",
		Apply:         "اعمال",
		Clear:         "پاک کردن",
		Unavailable:   "اطلاعات مالی در دسترس نیست",
	}
}

// GenericHeading is the heading used for the "all" filter.
func (l Labels) GenericHeading() string {
	return l.TotalCost + " (" + l.Currency + ")"
}

// CategoryHeading names the category; an empty label leaves an empty segment.
func (l Labels) CategoryHeading(label string) string {
	return l.TotalCost + " " + label + " (" + l.Currency + ")"
}

// BalanceHeading is the heading of the balance block.
func (l Labels) BalanceHeading() string {
	return l.Balance + " (" + l.Currency + ")"
}

// SummaryInput is everything the card needs for one render.
type SummaryInput struct {
	TotalCost  Money
	Balance    Money
	NewestDate string
	OldestDate string
	Filter     string
	Categories Categories
	DateRange  *DateRange
}

type RenderedSummary struct {
	Heading        string
	BalanceHeading string
	TotalCost      FormattedAmount
	Balance        FormattedAmount
	From           FormattedDate
	To             FormattedDate
	FilterActive   bool
	// CategoryFound is false when a specific filter matched no category.
	CategoryFound bool
}

// Panel turns a SummaryInput into display values. It keeps no state between
// renders.
type Panel struct {
	Labels   Labels
	Calendar Calendar

	// OnDateClick is notified when the date block is activated.
	OnDateClick func()
}

func NewPanel(labels Labels, cal Calendar) Panel {
	return Panel{Labels: labels, Calendar: cal}
}

// Render derives the heading, amounts and date block of in.
func (p Panel) Render(in SummaryInput) RenderedSummary {
	out := RenderedSummary{
		BalanceHeading: p.Labels.BalanceHeading(),
		TotalCost:      FormatAmount(in.TotalCost.Rials),
		Balance:        FormatAmount(in.Balance.Rials),
		CategoryFound:  true,
	}
	out.Heading, out.CategoryFound = p.heading(in.Filter, in.Categories)

	if in.DateRange.Active() {
		out.From = p.Calendar.FormatDate(in.DateRange.From)
		out.To = p.Calendar.FormatDate(in.DateRange.To)
		out.FilterActive = true
	} else {
		out.From = p.Calendar.FormatDate(in.OldestDate)
		out.To = p.Calendar.FormatDate(in.NewestDate)
	}
	return out
}

func (p Panel) heading(filter string, cats Categories) (string, bool) {
	if filter == FilterAll {
		return p.Labels.GenericHeading(), true
	}
	cat, ok := cats.Lookup(filter)
	return p.Labels.CategoryHeading(cat.Label), ok
}

// DateClicked fires OnDateClick, if set.
func (p Panel) DateClicked() {
	if p.OnDateClick != nil {
		p.OnDateClick()
	}
}
