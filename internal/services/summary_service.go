package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"melking/internal/cache"
	"melking/internal/core"
	"melking/internal/ledger"
)

const snapshotKey = "ledger"

// Snapshot is one consistent read of the ledger.
type Snapshot struct {
	Transactions []core.Transaction
	Balance      core.Money
	Categories   core.Categories
	LoadedAt     time.Time
}

// SummaryView is the panel input plus what the page shows around it.
type SummaryView struct {
	Input   core.SummaryInput
	Matched []core.Transaction
	Cached  bool
}

// SummaryService assembles summary inputs from a ledger.
type SummaryService struct {
	reader    ledger.Reader
	snapshots *cache.LRU[Snapshot]
}

// NewSummaryService caches ledger snapshots for ttl; a non-positive ttl
// disables caching.
func NewSummaryService(reader ledger.Reader, ttl time.Duration) *SummaryService {
	s := &SummaryService{reader: reader}
	if ttl > 0 {
		s.snapshots = cache.NewLRU[Snapshot](1, ttl)
	}
	return s
}

// Cache exposes the snapshot cache for cleanup registration. It is nil when
// caching is disabled.
func (s *SummaryService) Cache() *cache.LRU[Snapshot] {
	return s.snapshots
}

// Build filters the ledger and returns the input for the summary panel.
// The oldest/newest dates span the whole ledger; the total covers the matches.
func (s *SummaryService) Build(ctx context.Context, f core.TransactionFilter) (SummaryView, error) {
	snap, cached, err := s.snapshot(ctx)
	if err != nil {
		return SummaryView{}, err
	}

	matched := core.FilterTransactions(snap.Transactions, f, snap.Categories)
	bounds := core.Totals(snap.Transactions)
	filter := f.Category
	if filter == "" {
		filter = core.FilterAll
	}

	return SummaryView{
		Input: core.SummaryInput{
			TotalCost:  core.Totals(matched).Total,
			Balance:    snap.Balance,
			OldestDate: bounds.Oldest,
			NewestDate: bounds.Newest,
			Filter:     filter,
			Categories: snap.Categories,
			DateRange:  f.DateRange,
		},
		Matched: matched,
		Cached:  cached,
	}, nil
}

// Categories returns the ledger categories.
func (s *SummaryService) Categories(ctx context.Context) (core.Categories, error) {
	snap, _, err := s.snapshot(ctx)
	if err != nil {
		return core.Categories{}, err
	}
	return snap.Categories, nil
}

// Invalidate drops the cached snapshot.
func (s *SummaryService) Invalidate() {
	if s.snapshots != nil {
		s.snapshots.Purge()
	}
}

func (s *SummaryService) snapshot(ctx context.Context) (Snapshot, bool, error) {
	if s.snapshots == nil {
		snap, err := s.load(ctx)
		return snap, false, err
	}
	return s.snapshots.GetOrLoad(ctx, snapshotKey, s.load)
}

func (s *SummaryService) load(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs, err := s.reader.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		b, err := s.reader.CurrentBalance(gctx)
		if err != nil {
			return fmt.Errorf("read balance: %w", err)
		}
		snap.Balance = b
		return nil
	})
	g.Go(func() error {
		cats, err := s.reader.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		snap.Categories = cats
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("load ledger snapshot: %w", err)
	}

	snap.LoadedAt = time.Now()
	slog.DebugContext(ctx, "Ledger snapshot loaded",
		"transactions", len(snap.Transactions),
		"categories", snap.Categories.Len(),
		"duration_ms", time.Since(start).Milliseconds())
	return snap, nil
}
