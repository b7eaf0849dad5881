package core

import (
	"math"
	"strings"
)

// IsOutflow reports whether tx moves money out of the viewing account.
//
// The transaction type is the primary signal since the backend sets it
// deliberately. Transfers are recorded once but viewed from either
// side, so the from/to pair disambiguates them against the viewing
// account. When neither side matches (or the type is unrecognized) the
// raw sign of the amount decides; that last rule exists to keep
// malformed and legacy records from breaking the ledger view.
func IsOutflow(tx TransactionRecord, acct AccountContext) bool {
	kind := strings.ToLower(tx.Type)
	switch {
	case strings.Contains(kind, "withdraw"):
		return true
	case strings.Contains(kind, "deposit"):
		return false
	case strings.Contains(kind, "transfer"):
		if tx.From != "" && tx.From == acct.AccountNumber {
			return true
		}
		if tx.To != "" && tx.To == acct.AccountNumber {
			return false
		}
		// Neither side is the viewing account. Upstream data
		// inconsistency; fall through to the sign heuristic
		// rather than guessing a direction.
	}
	return tx.Amount < 0
}

// SignedAmount returns the transaction magnitude signed relative to
// the viewing account: positive for inflows, negative for outflows.
func SignedAmount(tx TransactionRecord, acct AccountContext) float64 {
	magnitude := math.Abs(tx.Amount)
	if IsOutflow(tx, acct) {
		return -magnitude
	}
	return magnitude
}
