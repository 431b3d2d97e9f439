package ledger

import (
	"context"

	"melking/internal/core"
)

// Ports for the ledger adapters.
type (
	// TransactionLister returns every transaction of the building ledger.
	TransactionLister interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// BalanceReader returns the current fund balance.
	BalanceReader interface {
		CurrentBalance(ctx context.Context) (core.Money, error)
	}

	// CategoryReader returns the expense types a ledger can be filtered by.
	CategoryReader interface {
		ListCategories(ctx context.Context) (core.Categories, error)
	}

	// Reader bundles the ports the summary needs.
	Reader interface {
		TransactionLister
		BalanceReader
		CategoryReader
	}
)
