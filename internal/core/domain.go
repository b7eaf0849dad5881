// Package core implements the ledger normalization and financial
// computation engine behind the dashboard: timestamp normalization,
// transaction direction resolution, ledger building with summary
// totals, and the EMI calculator.
//
// Everything in this package is a pure function over already-fetched
// data. Fetching, caching, and rendering belong to the callers.
package core

// TransactionRecord is a raw transaction as received from the ledger
// backend. Fields may be absent; amount is an unsigned magnitude and
// the timestamp arrives as epoch seconds, epoch milliseconds, or a
// date string depending on the record's age.
type TransactionRecord struct {
	ID           string  `json:"_id,omitempty"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Timestamp    any     `json:"timestamp"`
	BalanceAfter float64 `json:"balance_after"`
	To           string  `json:"to,omitempty"`
	From         string  `json:"from,omitempty"`
}

// AccountContext identifies the account from whose perspective a
// ledger is built. The zero value is a valid "unknown account": the
// transfer to/from comparisons simply never match.
type AccountContext struct {
	AccountNumber string  `json:"account_number"`
	Balance       float64 `json:"balance"`
}

// EnrichedTransaction is a TransactionRecord plus the derived signed
// amount and canonical timestamp. Built fresh on every ledger build
// and never mutated afterwards.
type EnrichedTransaction struct {
	TransactionRecord
	SignedAmount          float64 `json:"signed_amount"`
	NormalizedTimestampMS int64   `json:"normalized_timestamp_ms"`
}

// LedgerSummary holds the totals derived from one ledger build.
// ClosingBalance is advisory: it is the balance the backend reported,
// not a re-derivation from the transaction list, because the starting
// balance is unknown here.
type LedgerSummary struct {
	TotalIn        float64 `json:"total_in"`
	TotalOut       float64 `json:"total_out"`
	ClosingBalance float64 `json:"closing_balance"`
}

// LoanQuote is the output of the EMI calculator.
type LoanQuote struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Months            int     `json:"months"`
	EMI               float64 `json:"emi"`
	TotalInterest     float64 `json:"total_interest"`
	TotalPayment      float64 `json:"total_payment"`
}
