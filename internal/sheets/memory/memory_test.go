package memory

import (
	"context"
	"testing"

	"gbank/internal/core"
)

func TestWriteStatement(t *testing.T) {
	w := New()
	ctx := context.Background()

	acct := core.AccountContext{AccountNumber: "AC-1001", Balance: 500}
	ledger := []core.EnrichedTransaction{
		{
			TransactionRecord:     core.TransactionRecord{ID: "t1", Type: "deposit"},
			SignedAmount:          100,
			NormalizedTimestampMS: 1700000000000,
		},
	}
	summary := core.LedgerSummary{TotalIn: 100, ClosingBalance: 500}

	ref, err := w.WriteStatement(ctx, "u1", acct, ledger, summary)
	if err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	if ref != "memory://statements/u1" {
		t.Errorf("ref = %q", ref)
	}

	st, ok := w.Statement("u1")
	if !ok {
		t.Fatal("Statement(u1) not found")
	}
	if st.Account.AccountNumber != "AC-1001" {
		t.Errorf("account = %q", st.Account.AccountNumber)
	}
	if len(st.Ledger) != 1 || st.Ledger[0].ID != "t1" {
		t.Errorf("ledger = %+v", st.Ledger)
	}
	if st.Summary.TotalIn != 100 {
		t.Errorf("summary = %+v", st.Summary)
	}
}

func TestWriteStatement_Overwrites(t *testing.T) {
	w := New()
	ctx := context.Background()

	if _, err := w.WriteStatement(ctx, "u1", core.AccountContext{}, nil, core.LedgerSummary{TotalIn: 1}); err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	if _, err := w.WriteStatement(ctx, "u1", core.AccountContext{}, nil, core.LedgerSummary{TotalIn: 2}); err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}

	st, _ := w.Statement("u1")
	if st.Summary.TotalIn != 2 {
		t.Errorf("TotalIn = %v, want latest push", st.Summary.TotalIn)
	}
}

func TestStatement_Missing(t *testing.T) {
	w := New()
	if _, ok := w.Statement("nobody"); ok {
		t.Error("Statement() should report missing user")
	}
}
