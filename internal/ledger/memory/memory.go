package memory

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"melking/internal/core"
	"melking/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	cats    core.Categories
	items   []core.Transaction
	balance core.Money
}

func New(cats core.Categories, balance core.Money, items ...core.Transaction) *Store {
	return &Store{cats: cats, balance: balance, items: append([]core.Transaction(nil), items...)}
}

// NewFromFile seeds the store from a YAML ledger. A missing file yields an
// empty ledger with the default categories.
func NewFromFile(path string) (*Store, error) {
	seed, err := ledger.LoadSeed(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Seed file not found, starting with empty ledger", "path", path)
		return New(core.DefaultCategories(), core.Money{}), nil
	}
	if err != nil {
		return nil, err
	}
	return New(seed.CategorySet(), core.Money{Rials: seed.Balance}, seed.Ledger()...), nil
}

// ListTransactions returns a copy of the ledger.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *Store) CurrentBalance(_ context.Context) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance, nil
}

func (s *Store) ListCategories(_ context.Context) (core.Categories, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cats, nil
}

var _ ledger.Reader = (*Store)(nil)
