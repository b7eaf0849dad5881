// Package memory is an in-process statement writer for tests and
// local development without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gbank/internal/core"
	ports "gbank/internal/sheets"
)

// Statement is one pushed statement, kept verbatim.
type Statement struct {
	Account core.AccountContext
	Ledger  []core.EnrichedTransaction
	Summary core.LedgerSummary
}

type Writer struct {
	mu         sync.Mutex
	statements map[string]Statement
}

var _ ports.StatementWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{statements: make(map[string]Statement)}
}

// WriteStatement implements ports.StatementWriter.
func (w *Writer) WriteStatement(_ context.Context, userID string, acct core.AccountContext, ledger []core.EnrichedTransaction, summary core.LedgerSummary) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.statements[userID] = Statement{
		Account: acct,
		Ledger:  append([]core.EnrichedTransaction(nil), ledger...),
		Summary: summary,
	}
	return fmt.Sprintf("memory://statements/%s", userID), nil
}

// Statement returns the last statement pushed for a user.
func (w *Writer) Statement(userID string) (Statement, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	st, ok := w.statements[userID]
	return st, ok
}
