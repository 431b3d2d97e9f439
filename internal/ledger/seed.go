package ledger

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"melking/internal/core"
)

// Seed is the YAML document used to populate a ledger.
type Seed struct {
	Balance      int64             `yaml:"balance"`
	Categories   []SeedCategory    `yaml:"categories"`
	Transactions []SeedTransaction `yaml:"transactions"`
}

type SeedCategory struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type SeedTransaction struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Amount      int64  `yaml:"amount"`
	Date        string `yaml:"date"`
}

// LoadSeed reads a seed file. A missing file is reported with os.ErrNotExist.
func LoadSeed(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(b)
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.UnmarshalStrict(b, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	var problems []string
	for i, c := range s.Categories {
		if err := (core.Category{Value: c.Value, Label: c.Label}).Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("category %d: %v", i, err))
		}
	}
	for i, t := range s.Transactions {
		tx, err := t.Transaction()
		if err != nil {
			problems = append(problems, fmt.Sprintf("transaction %d: %v", i, err))
			continue
		}
		if err := tx.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("transaction %d: %v", i, err))
		}
	}
	if len(problems) > 0 {
		return Seed{}, errors.New("invalid seed:\n- " + strings.Join(problems, "\n- "))
	}
	return s, nil
}

// CategorySet returns the seed categories, or the defaults when none are listed.
func (s Seed) CategorySet() core.Categories {
	if len(s.Categories) == 0 {
		return core.DefaultCategories()
	}
	cats := make([]core.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		cats = append(cats, core.Category{Value: c.Value, Label: c.Label})
	}
	return core.NewCategories(cats...)
}

// Ledger converts the seed transactions. Seeds are validated on load, so
// entries that fail to convert here are skipped.
func (s Seed) Ledger() []core.Transaction {
	out := make([]core.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		if tx, err := t.Transaction(); err == nil {
			out = append(out, tx)
		}
	}
	return out
}

// Transaction converts a seed entry. An empty date stays undated.
func (t SeedTransaction) Transaction() (core.Transaction, error) {
	tx := core.Transaction{
		ID:          t.ID,
		Title:       strings.TrimSpace(t.Title),
		Description: strings.TrimSpace(t.Description),
		Category:    strings.TrimSpace(t.Category),
		Amount:      core.Money{Rials: t.Amount},
	}
	if strings.TrimSpace(t.Date) != "" {
		d, ok := core.ParseDate(t.Date)
		if !ok {
			return core.Transaction{}, fmt.Errorf("invalid date %q", t.Date)
		}
		tx.Date = d
	}
	return tx, nil
}
