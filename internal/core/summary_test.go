package core

import (
	"strings"
	"testing"
)

func testPanel() Panel {
	return NewPanel(DefaultLabels(), Jalali)
}

func TestHeadingAllIgnoresCategories(t *testing.T) {
	p := testPanel()
	want := "مجموع هزینه (ریال)"
	for _, cats := range []Categories{
		{},
		DefaultCategories(),
		NewCategories(Category{Value: FilterAll, Label: "همه"}),
	} {
		got := p.Render(SummaryInput{Filter: FilterAll, Categories: cats})
		if got.Heading != want || !got.CategoryFound {
			t.Fatalf("heading = %q, want %q", got.Heading, want)
		}
	}
}

func TestHeadingMatchedCategory(t *testing.T) {
	got := testPanel().Render(SummaryInput{Filter: "repair", Categories: DefaultCategories()})
	if got.Heading != "مجموع هزینه تعمیرات (ریال)" {
		t.Fatalf("unexpected heading %q", got.Heading)
	}
	if !got.CategoryFound {
		t.Fatalf("expected CategoryFound")
	}
}

func TestHeadingMissDegradesToEmptyLabel(t *testing.T) {
	got := testPanel().Render(SummaryInput{Filter: "nope", Categories: DefaultCategories()})
	if got.Heading != "مجموع هزینه  (ریال)" {
		t.Fatalf("unexpected heading %q", got.Heading)
	}
	if got.CategoryFound {
		t.Fatalf("expected CategoryFound=false on miss")
	}
}

func TestRenderDefaultMode(t *testing.T) {
	got := testPanel().Render(SummaryInput{OldestDate: "2023-01-01", NewestDate: "2023-12-31", Filter: FilterAll})
	if got.FilterActive {
		t.Fatalf("no range given, marker must be off")
	}
	if got.From.Text != "1401/10/11" || got.To.Text != "1402/10/10" {
		t.Fatalf("unexpected dates %q %q", got.From.Text, got.To.Text)
	}
}

func TestRenderRangeMode(t *testing.T) {
	got := testPanel().Render(SummaryInput{
		OldestDate: "2020-01-01",
		NewestDate: "2020-12-31",
		Filter:     FilterAll,
		DateRange:  &DateRange{From: "2023-03-21", To: "garbage"},
	})
	if !got.FilterActive {
		t.Fatalf("range given, marker must be on")
	}
	if got.From.Text != "1402/01/01" {
		t.Fatalf("from = %q", got.From.Text)
	}
	if got.To.Text != "garbage" || got.To.Status != DateUnparsed {
		t.Fatalf("to = %+v", got.To)
	}
}

func TestRenderEmptyRangeStillActive(t *testing.T) {
	got := testPanel().Render(SummaryInput{OldestDate: "2023-01-01", DateRange: &DateRange{}})
	if !got.FilterActive {
		t.Fatalf("an empty range is still a range")
	}
	if got.From.Text != DatePlaceholder || got.To.Text != DatePlaceholder {
		t.Fatalf("expected placeholders, got %q %q", got.From.Text, got.To.Text)
	}
}

func TestRenderEndToEndScenario(t *testing.T) {
	got := testPanel().Render(SummaryInput{
		TotalCost:  Money{Rials: 1000000},
		Balance:    Money{Rials: 500000},
		Filter:     FilterAll,
		Categories: NewCategories(),
		OldestDate: "2023-01-01",
		NewestDate: "2023-12-31",
	})
	if got.Heading != DefaultLabels().GenericHeading() {
		t.Fatalf("heading = %q", got.Heading)
	}
	if got.TotalCost.Text != "1,000,000" || got.Balance.Text != "500,000" {
		t.Fatalf("amounts = %q / %q", got.TotalCost.Text, got.Balance.Text)
	}
	if got.TotalCost.Value != 1000000 || got.Balance.Value != 500000 {
		t.Fatalf("final values lost: %+v %+v", got.TotalCost, got.Balance)
	}
	if got.From.Text != "1401/10/11" || got.To.Text != "1402/10/10" || got.FilterActive {
		t.Fatalf("date block = %+v %+v active=%v", got.From, got.To, got.FilterActive)
	}
	if !strings.Contains(got.BalanceHeading, "موجودی صندوق") {
		t.Fatalf("balance heading = %q", got.BalanceHeading)
	}
}

func TestDateClicked(t *testing.T) {
	p := testPanel()
	p.DateClicked() // no hook, no panic

	calls := 0
	p.OnDateClick = func() { calls++ }
	p.DateClicked()
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
}
