package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"melking/internal/core"
	"melking/internal/ledger"
	"melking/internal/ledger/memory"
	"melking/internal/log"
	"melking/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentStorage),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	default:
		return f.createMemoryBackend(config)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	seeded := false
	if config.SeedFile != "" {
		seed, err := ledger.LoadSeed(config.SeedFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			f.logger.Info("Seed file not found, skipping seed", "path", config.SeedFile)
		case err != nil:
			repo.Close()
			return nil, err
		default:
			if seeded, err = repo.ApplySeed(ctx, seed); err != nil {
				repo.Close()
				return nil, fmt.Errorf("apply seed %s: %w", config.SeedFile, err)
			}
		}
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"seeded", seeded)

	return &BackendResult{
		Backend: repo,
		Cleanup: repo.Close,
		Ping:    repo.Ping,
		Seeded:  seeded,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	if config.SeedFile == "" {
		f.logger.Info("Initialized memory backend without seed")
		return &BackendResult{Backend: memory.New(core.DefaultCategories(), core.Money{})}, nil
	}

	store, err := memory.NewFromFile(config.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}
	f.logger.Info("Initialized memory backend", "seed_file", config.SeedFile)

	return &BackendResult{Backend: store}, nil
}
