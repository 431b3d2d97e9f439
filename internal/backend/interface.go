package backend

import (
	"context"

	"melking/internal/config"
	"melking/internal/ledger"
)

// Backend is the ledger the summary reads from.
type Backend = ledger.Reader

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional hooks.
type BackendResult struct {
	Backend Backend
	// Cleanup releases the backend; nil when there is nothing to release.
	Cleanup CleanupFunc
	// Ping checks the backend is reachable; nil for in-process stores.
	Ping func(ctx context.Context) error
	// Seeded reports whether this start wrote the seed into the database.
	Seeded bool
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// SeedFile populates an empty ledger. Optional.
	SeedFile string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = config.BackendSQLite
	MemoryBackend BackendType = config.BackendMemory
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
