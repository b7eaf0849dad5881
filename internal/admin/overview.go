// Package admin derives the KPI statistics for the administrative
// dashboard by composing tabular reductions over the same row slices
// the collection views display.
package admin

import (
	"gbank/internal/core"
	"gbank/internal/tabular"
)

// LoanTotals breaks the loan book down by workflow status.
type LoanTotals struct {
	Total        int     `json:"total"`
	Approved     int     `json:"approved"`
	Pending      int     `json:"pending"`
	Rejected     int     `json:"rejected"`
	DisbursedAmt float64 `json:"disbursed_amount"`
	EMIsPaid     float64 `json:"emis_paid"`
	EMIsTotal    float64 `json:"emis_total"`
}

// Overview is the payload behind the admin KPI cards.
type Overview struct {
	Customers        int        `json:"customers"`
	Accounts         int        `json:"accounts"`
	TotalBalance     float64    `json:"total_balance"`
	Loans            LoanTotals `json:"loans"`
	RepaymentRatePct int        `json:"repayment_rate_pct"`
}

// BuildOverview aggregates the three administrative collections into
// the overview statistics. Empty collections produce zeros throughout;
// the repayment rate is 0 when no EMIs are scheduled at all.
func BuildOverview(customers []core.Customer, accounts []core.Account, loans []core.Loan) Overview {
	accountRows := AccountRows(accounts)
	loanRows := LoanRows(loans)

	totals := LoanTotals{
		Total:        len(loanRows),
		Approved:     tabular.CountWhere(loanRows, "status", "approved"),
		Pending:      tabular.CountWhere(loanRows, "status", "pending"),
		Rejected:     tabular.CountWhere(loanRows, "status", "rejected"),
		DisbursedAmt: tabular.SumNumeric(tabular.FilterExact(loanRows, "status", "approved"), "amount"),
		EMIsPaid:     tabular.SumNumeric(loanRows, "emis_paid"),
		EMIsTotal:    tabular.SumNumeric(loanRows, "months"),
	}

	return Overview{
		Customers:        len(customers),
		Accounts:         len(accountRows),
		TotalBalance:     tabular.SumNumeric(accountRows, "balance"),
		Loans:            totals,
		RepaymentRatePct: tabular.CompletionRate(totals.EMIsPaid, totals.EMIsTotal),
	}
}

// CustomerRows converts customers to the row form the query engine
// understands.
func CustomerRows(customers []core.Customer) []tabular.Row {
	rows := make([]tabular.Row, len(customers))
	for i, c := range customers {
		rows[i] = c.Row()
	}
	return rows
}

func AccountRows(accounts []core.Account) []tabular.Row {
	rows := make([]tabular.Row, len(accounts))
	for i, a := range accounts {
		rows[i] = a.Row()
	}
	return rows
}

func LoanRows(loans []core.Loan) []tabular.Row {
	rows := make([]tabular.Row, len(loans))
	for i, l := range loans {
		rows[i] = l.Row()
	}
	return rows
}

// SearchFields are the keyword-searchable columns per collection,
// mirroring what the dashboard's search box promises.
var SearchFields = map[string][]string{
	"customers": {"_id", "username", "email"},
	"accounts":  {"account_number", "user_id", "account_type"},
	"loans":     {"_id", "user_id", "status"},
}
