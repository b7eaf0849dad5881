// Package memory is the development backend: it loads the four record
// collections from JSON seed files and serves them from memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gbank/internal/core"
)

// Store holds seeded records guarded by a mutex so the worker can
// upsert while the server reads.
type Store struct {
	mu           sync.RWMutex
	customers    []core.Customer
	accounts     []core.Account
	loans        []core.Loan
	transactions map[string][]core.TransactionRecord // keyed by user ID
}

// New returns an empty store.
func New() *Store {
	return &Store{transactions: make(map[string][]core.TransactionRecord)}
}

// NewFromFiles seeds a store from base/customers.json, accounts.json,
// loans.json, and transactions.json. Missing or malformed files are
// skipped; an empty store is a valid starting point.
func NewFromFiles(base string) *Store {
	s := New()
	readJSON(filepath.Join(base, "customers.json"), &s.customers)
	readJSON(filepath.Join(base, "accounts.json"), &s.accounts)
	readJSON(filepath.Join(base, "loans.json"), &s.loans)
	readJSON(filepath.Join(base, "transactions.json"), &s.transactions)
	if s.transactions == nil {
		s.transactions = make(map[string][]core.TransactionRecord)
	}
	return s
}

func readJSON(path string, into any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, into)
}

// AccountByUser implements backend.AccountReader.
func (s *Store) AccountByUser(_ context.Context, userID string) (core.AccountContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.UserID == userID {
			return core.AccountContext{AccountNumber: a.AccountNumber, Balance: a.Balance}, nil
		}
	}
	return core.AccountContext{}, fmt.Errorf("no account for user %s", userID)
}

// ListTransactions implements backend.TransactionLister.
func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.TransactionRecord(nil), s.transactions[userID]...), nil
}

// ListCustomers implements backend.CustomerLister.
func (s *Store) ListCustomers(_ context.Context) ([]core.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Customer(nil), s.customers...), nil
}

// ListAccounts implements backend.AccountLister.
func (s *Store) ListAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Account(nil), s.accounts...), nil
}

// ListLoans implements backend.LoanLister.
func (s *Store) ListLoans(_ context.Context) ([]core.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Loan(nil), s.loans...), nil
}

// AllTransactions returns a copy of every user's transaction list.
func (s *Store) AllTransactions() map[string][]core.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]core.TransactionRecord, len(s.transactions))
	for userID, txs := range s.transactions {
		out[userID] = append([]core.TransactionRecord(nil), txs...)
	}
	return out
}

// SeedTransactions replaces a user's transaction list. Used by tests
// and by the dev tooling that fakes backend pushes.
func (s *Store) SeedTransactions(userID string, txs []core.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[userID] = append([]core.TransactionRecord(nil), txs...)
}

// UpsertAccount inserts or replaces an account by account number.
func (s *Store) UpsertAccount(a core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].AccountNumber == a.AccountNumber {
			s.accounts[i] = a
			return
		}
	}
	s.accounts = append(s.accounts, a)
}

// UpsertCustomer inserts or replaces a customer by ID.
func (s *Store) UpsertCustomer(c core.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return
		}
	}
	s.customers = append(s.customers, c)
}

// UpsertLoan inserts or replaces a loan by ID.
func (s *Store) UpsertLoan(l core.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.loans {
		if s.loans[i].ID == l.ID {
			s.loans[i] = l
			return
		}
	}
	s.loans = append(s.loans, l)
}
