package core

import "sort"

// BuildLedger enriches raw transactions with signed amounts and
// canonical timestamps, orders them newest first, and derives the
// summary totals. Ties on the normalized timestamp keep their input
// order; that is the documented tie-break policy, not an accident of
// the sort. An empty input yields an empty ledger and a zero summary
// (apart from the reported closing balance).
func BuildLedger(raw []TransactionRecord, acct AccountContext) ([]EnrichedTransaction, LedgerSummary) {
	ledger := make([]EnrichedTransaction, 0, len(raw))
	for _, tx := range raw {
		ledger = append(ledger, EnrichedTransaction{
			TransactionRecord:     tx,
			SignedAmount:          SignedAmount(tx, acct),
			NormalizedTimestampMS: NormalizeTimestamp(tx.Timestamp),
		})
	}

	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].NormalizedTimestampMS > ledger[j].NormalizedTimestampMS
	})

	summary := LedgerSummary{ClosingBalance: acct.Balance}
	for _, tx := range ledger {
		if tx.SignedAmount > 0 {
			summary.TotalIn += tx.SignedAmount
		} else {
			summary.TotalOut += -tx.SignedAmount
		}
	}
	return ledger, summary
}
