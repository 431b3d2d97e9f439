package backend

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"melking/internal/config"
	"melking/internal/log"
)

const seedYAML = `balance: 500000
transactions:
  - id: "1"
    title: قبض آب
    category: water_bill
    amount: 1000000
    date: "2023-01-01"
`

func testFactory() Factory {
	return NewFactory(log.New(log.Config{Output: io.Discard}))
}

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("nil config must fail")
	}
	_, err := FromAppConfig(&config.Config{DataBackend: "sheets"})
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("err = %v, want ErrUnknownBackend", err)
	}
	got, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", SeedFile: "s.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != SQLiteBackend || got.SQLiteDBPath != "x.db" || got.SeedFile != "s.yaml" {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{Type: SQLiteBackend}).Validate(); err == nil {
		t.Fatal("sqlite without path must fail")
	}
	if err := (Config{Type: MemoryBackend}).Validate(); err != nil {
		t.Fatalf("memory needs nothing: %v", err)
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	ctx := context.Background()
	res, err := testFactory().CreateBackend(ctx, Config{Type: MemoryBackend, SeedFile: writeSeed(t)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cleanup != nil || res.Ping != nil {
		t.Fatal("memory backend has no hooks")
	}
	b, _ := res.Backend.CurrentBalance(ctx)
	if b.Rials != 500000 {
		t.Fatalf("balance = %d", b.Rials)
	}

	res, err = testFactory().CreateBackend(ctx, Config{Type: MemoryBackend})
	if err != nil {
		t.Fatal(err)
	}
	cats, _ := res.Backend.ListCategories(ctx)
	if cats.Len() == 0 {
		t.Fatal("unseeded memory backend should carry default categories")
	}
}

func TestCreateSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "db", "melking.db"),
		SeedFile:     writeSeed(t),
	}

	res, err := testFactory().CreateBackend(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Seeded {
		t.Fatal("first start should seed")
	}
	if err := res.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := res.Cleanup(); err != nil {
		t.Fatal(err)
	}

	res, err = testFactory().CreateBackend(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Cleanup()
	if res.Seeded {
		t.Fatal("second start must not seed again")
	}
	txs, err := res.Backend.ListTransactions(ctx)
	if err != nil || len(txs) != 1 {
		t.Fatalf("transactions = %d, err = %v", len(txs), err)
	}
}

func TestCreateSQLiteBackendMissingSeed(t *testing.T) {
	res, err := testFactory().CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "melking.db"),
		SeedFile:     filepath.Join(t.TempDir(), "none.yaml"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer res.Cleanup()
	if res.Seeded {
		t.Fatal("nothing to seed")
	}
}

func TestCreateBackendUnknownType(t *testing.T) {
	_, err := testFactory().CreateBackend(context.Background(), Config{Type: "sheets"})
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("err = %v", err)
	}
}
