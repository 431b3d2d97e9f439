package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"melking/internal/core"
	"melking/internal/ledger"

	_ "modernc.org/sqlite"
)

const isoDay = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ListTransactions implements ledger.TransactionLister
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, amount, occurred_on
		FROM transactions
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			id         int64
			t          core.Transaction
			occurredOn sql.NullString
		)
		if err := rows.Scan(&id, &t.Title, &t.Description, &t.Category, &t.Amount.Rials, &occurredOn); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.ID = strconv.FormatInt(id, 10)
		if occurredOn.Valid && occurredOn.String != "" {
			d, ok := core.ParseDate(occurredOn.String)
			if !ok {
				slog.WarnContext(ctx, "Stored transaction has unparseable date", "id", id, "occurred_on", occurredOn.String)
			}
			t.Date = d
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// CurrentBalance implements ledger.BalanceReader
func (r *SQLiteRepository) CurrentBalance(ctx context.Context) (core.Money, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `SELECT balance FROM fund WHERE id = 1`).Scan(&balance)
	if err == sql.ErrNoRows {
		return core.Money{}, nil
	}
	if err != nil {
		return core.Money{}, fmt.Errorf("get fund balance: %w", err)
	}
	return core.Money{Rials: balance}, nil
}

// ListCategories implements ledger.CategoryReader
func (r *SQLiteRepository) ListCategories(ctx context.Context) (core.Categories, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT value, label FROM categories ORDER BY sort_order, value`)
	if err != nil {
		return core.Categories{}, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.Value, &c.Label); err != nil {
			return core.Categories{}, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return core.Categories{}, fmt.Errorf("iterate categories: %w", err)
	}
	return core.NewCategories(cats...), nil
}

// AppendTransaction stores t and returns its database id.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, t core.Transaction) (string, error) {
	return appendTransaction(ctx, r.db, t)
}

func appendTransaction(ctx context.Context, db execer, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	var occurredOn sql.NullString
	if !t.Date.IsZero() {
		occurredOn = sql.NullString{String: t.Date.Format(isoDay), Valid: true}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO transactions (title, description, category, amount, occurred_on)
		VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Category, t.Amount.Rials, occurredOn)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"title", t.Title,
		"amount", t.Amount.Rials,
		"category", t.Category)

	return strconv.FormatInt(id, 10), nil
}

// UpsertCategory inserts or relabels a category.
func (r *SQLiteRepository) UpsertCategory(ctx context.Context, c core.Category, order int) error {
	return upsertCategory(ctx, r.db, c, order)
}

func upsertCategory(ctx context.Context, db execer, c core.Category, order int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO categories (value, label, sort_order) VALUES (?, ?, ?)
		ON CONFLICT(value) DO UPDATE SET label = excluded.label, sort_order = excluded.sort_order`,
		c.Value, c.Label, order)
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", c.Value, err)
	}
	return nil
}

func (r *SQLiteRepository) SetBalance(ctx context.Context, m core.Money) error {
	return setBalance(ctx, r.db, m)
}

func setBalance(ctx context.Context, db execer, m core.Money) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO fund (id, balance, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET balance = excluded.balance, updated_at = CURRENT_TIMESTAMP`,
		m.Rials)
	if err != nil {
		return fmt.Errorf("set fund balance: %w", err)
	}
	return nil
}

// CountTransactions returns the number of stored transactions.
func (r *SQLiteRepository) CountTransactions(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// ApplySeed loads a seed into an empty ledger. It is a no-op when
// transactions already exist, so repeated starts do not duplicate rows.
// All writes share one transaction; a failed seed leaves the ledger empty.
func (r *SQLiteRepository) ApplySeed(ctx context.Context, seed ledger.Seed) (bool, error) {
	n, err := r.CountTransactions(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		slog.InfoContext(ctx, "Ledger already populated, skipping seed", "transactions", n)
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range seed.Categories {
		if err := upsertCategory(ctx, tx, core.Category{Value: c.Value, Label: c.Label}, i+1); err != nil {
			return false, err
		}
	}
	for _, t := range seed.Ledger() {
		if _, err := appendTransaction(ctx, tx, t); err != nil {
			return false, err
		}
	}
	if err := setBalance(ctx, tx, core.Money{Rials: seed.Balance}); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "Ledger seeded", "transactions", len(seed.Transactions), "categories", len(seed.Categories))
	return true, nil
}

var _ ledger.Reader = (*SQLiteRepository)(nil)
