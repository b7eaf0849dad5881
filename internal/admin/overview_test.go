package admin

import (
	"testing"

	"gbank/internal/core"
)

func TestBuildOverview(t *testing.T) {
	customers := []core.Customer{
		{ID: "u1", Username: "alice", Email: "alice@gbank.example"},
		{ID: "u2", Username: "bob", Email: "bob@gbank.example"},
	}
	accounts := []core.Account{
		{AccountNumber: "ACC-1", AccountType: "savings", Balance: 900, UserID: "u1"},
		{AccountNumber: "ACC-2", AccountType: "current", Balance: 100, UserID: "u2"},
	}
	loans := []core.Loan{
		{ID: "l1", UserID: "u1", Amount: 50000, Months: 12, Status: "approved", EMIsPaid: 6},
		{ID: "l2", UserID: "u2", Amount: 20000, Months: 24, Status: "pending", EMIsPaid: 0},
		{ID: "l3", UserID: "u2", Amount: 10000, Months: 12, Status: "rejected", EMIsPaid: 0},
		{ID: "l4", UserID: "u1", Amount: 30000, Months: 12, Status: "approved", EMIsPaid: 9},
	}

	ov := BuildOverview(customers, accounts, loans)

	if ov.Customers != 2 || ov.Accounts != 2 {
		t.Errorf("counts = %d customers, %d accounts; want 2 and 2", ov.Customers, ov.Accounts)
	}
	if ov.TotalBalance != 1000 {
		t.Errorf("TotalBalance = %v, want 1000", ov.TotalBalance)
	}
	if ov.Loans.Approved != 2 || ov.Loans.Pending != 1 || ov.Loans.Rejected != 1 {
		t.Errorf("loan status counts = %+v", ov.Loans)
	}
	if ov.Loans.DisbursedAmt != 80000 {
		t.Errorf("DisbursedAmt = %v, want 80000 (approved only)", ov.Loans.DisbursedAmt)
	}
	// 15 EMIs paid of 60 scheduled.
	if ov.RepaymentRatePct != 25 {
		t.Errorf("RepaymentRatePct = %d, want 25", ov.RepaymentRatePct)
	}
}

func TestBuildOverviewEmpty(t *testing.T) {
	ov := BuildOverview(nil, nil, nil)
	if ov.Customers != 0 || ov.Accounts != 0 || ov.TotalBalance != 0 {
		t.Errorf("empty overview = %+v, want zeros", ov)
	}
	if ov.RepaymentRatePct != 0 {
		t.Errorf("RepaymentRatePct = %d, want 0 with no loans", ov.RepaymentRatePct)
	}
}
