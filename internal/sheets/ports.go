// Package sheets defines the port for pushing account statements to a
// spreadsheet destination.
package sheets

import (
	"context"

	"gbank/internal/core"
)

// StatementWriter replaces a user's statement sheet with the given
// ledger and summary. It returns a reference to the written range.
type StatementWriter interface {
	WriteStatement(ctx context.Context, userID string, acct core.AccountContext, ledger []core.EnrichedTransaction, summary core.LedgerSummary) (string, error)
}
