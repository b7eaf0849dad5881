// Package backend defines the ports the HTTP layer reads through and
// the factory that wires a concrete data backend behind them.
package backend

import (
	"context"

	"gbank/internal/core"
)

// Ports for the read model. The authoritative ledger lives in the
// upstream banking backend; these interfaces only expose what has
// already been fed into this service.
type (
	// AccountReader resolves the account context for a user.
	AccountReader interface {
		AccountByUser(ctx context.Context, userID string) (core.AccountContext, error)
	}

	// TransactionLister returns the raw transaction records for a
	// user, in whatever order and timestamp format the backend
	// stored them. Normalization happens in core.
	TransactionLister interface {
		ListTransactions(ctx context.Context, userID string) ([]core.TransactionRecord, error)
	}

	// CustomerLister returns all customers for the admin views.
	CustomerLister interface {
		ListCustomers(ctx context.Context) ([]core.Customer, error)
	}

	// AccountLister returns all accounts for the admin views.
	AccountLister interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
	}

	// LoanLister returns all loans for the admin views.
	LoanLister interface {
		ListLoans(ctx context.Context) ([]core.Loan, error)
	}
)

// Store is the unified read interface a backend must provide.
type Store interface {
	AccountReader
	TransactionLister
	CustomerLister
	AccountLister
	LoanLister
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries a wired backend and its optional cleanup.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Type selects a concrete backend implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

// IsValid reports whether t names a known backend.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	}
	return false
}

// Config holds what the factory needs to build a backend.
type Config struct {
	Type          Type
	SQLiteDBPath  string
	DataDirectory string
}
