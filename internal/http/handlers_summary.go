package http

import (
	"context"
	"net/http"

	"melking/internal/core"
	"melking/internal/log"
)

const appTitle = "Melking"

// summaryCard is the data of finance_summary.html.
type summaryCard struct {
	Labels      core.Labels
	Summary     core.RenderedSummary
	Filter      string
	Matched     int
	Unavailable bool
}

type indexPage struct {
	Title      string
	Labels     core.Labels
	Query      summaryQuery
	Categories []core.Category
	Card       summaryCard
}

type dateFilterDialog struct {
	Labels core.Labels
	From   string
	To     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("not found").Write(w)
		return
	}

	q := readSummaryQuery(r.URL.Query())
	page := indexPage{Title: appTitle, Labels: s.labels, Query: q}

	f, err := q.TransactionFilter()
	if err != nil {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Ignoring invalid amount filter", log.FieldError, err)
		q.Min, q.Max = "", ""
		page.Query = q
		f, _ = q.TransactionFilter()
	}
	card, cats := s.buildCard(r.Context(), f)
	page.Card = card
	page.Categories = cats.All()

	s.writeTemplate(w, r, NewHTMXResponse(), "index.html", page)
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	f, err := readSummaryQuery(r.URL.Query()).TransactionFilter()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	card, _ := s.buildCard(r.Context(), f)
	b := NewHTMXResponse()
	if card.Unavailable {
		b.TriggerErrorNotification(s.labels.Unavailable)
	}
	s.writeTemplate(w, r, b, "finance_summary.html", card)
}

// handleDateFilter serves the date-range dialog. Opening it is the date
// block's click, which the panel reports as a summary:date-click event.
func (s *Server) handleDateFilter(w http.ResponseWriter, r *http.Request) {
	q := readSummaryQuery(r.URL.Query())
	b := NewHTMXResponse()

	p := s.panel()
	p.OnDateClick = func() { b.TriggerDateClick() }
	p.DateClicked()

	s.writeTemplate(w, r, b, "date_filter.html", dateFilterDialog{
		Labels: s.labels,
		From:   q.From,
		To:     q.To,
	})
}

// buildCard builds the card for f. A ledger failure yields a placeholder
// card rather than an error page.
func (s *Server) buildCard(ctx context.Context, f core.TransactionFilter) (summaryCard, core.Categories) {
	logger := log.FromContext(ctx)
	from, to := "", ""
	if f.DateRange.Active() {
		from, to = f.DateRange.From, f.DateRange.To
	}
	fields := log.NewFields().WithSummaryFilter(f.Category, f.Search, from, to)

	card := summaryCard{Labels: s.labels, Filter: f.Category}
	if s.summaries == nil {
		card.Unavailable = true
		return card, core.Categories{}
	}

	cctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	view, err := s.summaries.Build(cctx, f)
	if err != nil {
		logger.Failure(ctx, "Summary build failed", log.OpLoad, err, fields)
		card.Unavailable = true
		return card, core.Categories{}
	}

	card.Summary = s.panel().Render(view.Input)
	card.Filter = view.Input.Filter
	card.Matched = len(view.Matched)

	fields[log.FieldMatched] = card.Matched
	fields[log.FieldCacheHit] = view.Cached
	if !card.Summary.CategoryFound {
		logger.DebugContext(ctx, "Summary filter matched no category", fields.ToSlice()...)
	}
	logger.DebugContext(ctx, "Summary rendered", fields.ToSlice()...)
	return card, view.Input.Categories
}
