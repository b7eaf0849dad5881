package core

import "testing"

func TestBuildLedgerOrdering(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100", Balance: 900}
	raw := []TransactionRecord{
		{Type: "deposit", Amount: 100, Timestamp: float64(1700000000)},       // seconds
		{Type: "withdraw", Amount: 50, Timestamp: float64(1700000200000)},   // millis, newest
		{Type: "deposit", Amount: 25, Timestamp: "2023-11-14T22:14:00Z"},    // between the two
		{Type: "deposit", Amount: 10, Timestamp: "garbage"},                 // normalizes to 0
	}

	ledger, _ := BuildLedger(raw, acct)
	if len(ledger) != 4 {
		t.Fatalf("len(ledger) = %d, want 4", len(ledger))
	}
	for i := 1; i < len(ledger); i++ {
		if ledger[i-1].NormalizedTimestampMS < ledger[i].NormalizedTimestampMS {
			t.Errorf("ledger not descending at %d: %d < %d",
				i, ledger[i-1].NormalizedTimestampMS, ledger[i].NormalizedTimestampMS)
		}
	}
	if ledger[0].Amount != 50 {
		t.Errorf("newest entry amount = %v, want 50", ledger[0].Amount)
	}
	if ledger[3].NormalizedTimestampMS != 0 {
		t.Errorf("malformed timestamp should sort last, got %d", ledger[3].NormalizedTimestampMS)
	}
}

func TestBuildLedgerStableTies(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100"}
	raw := []TransactionRecord{
		{ID: "a", Type: "deposit", Amount: 1, Timestamp: float64(1700000000)},
		{ID: "b", Type: "deposit", Amount: 2, Timestamp: float64(1700000000)},
		{ID: "c", Type: "deposit", Amount: 3, Timestamp: float64(1700000000)},
	}
	ledger, _ := BuildLedger(raw, acct)
	for i, want := range []string{"a", "b", "c"} {
		if ledger[i].ID != want {
			t.Errorf("tie order position %d = %q, want %q", i, ledger[i].ID, want)
		}
	}
}

func TestBuildLedgerSummary(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100", Balance: 1234.5}
	raw := []TransactionRecord{
		{Type: "deposit", Amount: 500, Timestamp: float64(1700000000)},
		{Type: "withdraw", Amount: 200, Timestamp: float64(1700000100)},
		{Type: "transfer", Amount: 100, From: "ACC-100", To: "ACC-200", Timestamp: float64(1700000200)},
		{Type: "transfer", Amount: 75, From: "ACC-300", To: "ACC-100", Timestamp: float64(1700000300)},
	}

	_, summary := BuildLedger(raw, acct)
	if summary.TotalIn != 575 {
		t.Errorf("TotalIn = %v, want 575", summary.TotalIn)
	}
	if summary.TotalOut != 300 {
		t.Errorf("TotalOut = %v, want 300", summary.TotalOut)
	}
	if summary.ClosingBalance != 1234.5 {
		t.Errorf("ClosingBalance = %v, want 1234.5 (reported, not recomputed)", summary.ClosingBalance)
	}
}

func TestBuildLedgerEmpty(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100", Balance: 42}
	ledger, summary := BuildLedger(nil, acct)
	if len(ledger) != 0 {
		t.Errorf("len(ledger) = %d, want 0", len(ledger))
	}
	want := LedgerSummary{TotalIn: 0, TotalOut: 0, ClosingBalance: 42}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestBuildLedgerPassesIDThrough(t *testing.T) {
	raw := []TransactionRecord{{ID: "tx-9", Type: "deposit", Amount: 5, Timestamp: float64(1)}}
	ledger, _ := BuildLedger(raw, AccountContext{})
	if ledger[0].ID != "tx-9" {
		t.Errorf("ID = %q, want tx-9", ledger[0].ID)
	}
}
