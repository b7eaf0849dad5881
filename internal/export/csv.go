// Package export renders rows and statements into CSV and XLSX
// downloads.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gbank/internal/core"
	"gbank/internal/tabular"
)

// EscapeCSV quotes a field when it contains a comma, quote, or
// newline, doubling any embedded quotes.
func EscapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// RowsCSV renders rows under the sorted union of their flattened
// headers. Keys missing from a row become empty fields.
func RowsCSV(rows []tabular.Row) []byte {
	headers := tabular.FlattenHeaders(rows)

	var b strings.Builder
	writeLine(&b, headers)
	for _, row := range rows {
		flat := tabular.Flatten(row)
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = flat[h]
		}
		writeLine(&b, fields)
	}
	return []byte(b.String())
}

// StatementCSV renders a user's enriched ledger followed by the
// period summary, newest transaction first.
func StatementCSV(acct core.AccountContext, ledger []core.EnrichedTransaction, summary core.LedgerSummary) []byte {
	var b strings.Builder
	writeLine(&b, []string{"Account", acct.AccountNumber})
	writeLine(&b, nil)
	writeLine(&b, []string{"Date", "Type", "Amount", "Balance After"})
	for _, tx := range ledger {
		writeLine(&b, []string{
			statementDate(tx.NormalizedTimestampMS),
			tx.Type,
			money(tx.SignedAmount),
			money(tx.BalanceAfter),
		})
	}
	writeLine(&b, nil)
	writeLine(&b, []string{"Total In", money(summary.TotalIn)})
	writeLine(&b, []string{"Total Out", money(summary.TotalOut)})
	writeLine(&b, []string{"Closing Balance", money(summary.ClosingBalance)})
	return []byte(b.String())
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSV(f))
	}
	b.WriteByte('\n')
}

func statementDate(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// money renders an amount with exactly two decimal places. Going
// through decimal avoids float formatting artifacts like 0.30000000000000004.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
