package core

import "testing"

func TestSignedAmountByType(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100", Balance: 5000}

	tests := []struct {
		name string
		tx   TransactionRecord
		want float64
	}{
		{"deposit is positive", TransactionRecord{Type: "deposit", Amount: 250}, 250},
		{"withdraw is negative", TransactionRecord{Type: "withdraw", Amount: 250}, -250},
		{"case insensitive type", TransactionRecord{Type: "WITHDRAWAL", Amount: 80}, -80},
		{"deposit substring", TransactionRecord{Type: "cash-deposit", Amount: 10}, 10},
		{"transfer out when sender", TransactionRecord{Type: "transfer", Amount: 300, From: "ACC-100", To: "ACC-200"}, -300},
		{"transfer in when receiver", TransactionRecord{Type: "transfer", Amount: 300, From: "ACC-200", To: "ACC-100"}, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignedAmount(tt.tx, acct); got != tt.want {
				t.Errorf("SignedAmount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignedAmountFallback(t *testing.T) {
	acct := AccountContext{AccountNumber: "ACC-100"}

	t.Run("ambiguous transfer uses raw sign", func(t *testing.T) {
		// Neither side matches the viewing account: the raw sign of
		// the amount is authoritative, non-negative defaults to inflow.
		tx := TransactionRecord{Type: "transfer", Amount: 120, From: "ACC-777", To: "ACC-888"}
		if got := SignedAmount(tx, acct); got != 120 {
			t.Errorf("ambiguous transfer SignedAmount() = %v, want 120", got)
		}
		tx.Amount = -120
		if got := SignedAmount(tx, acct); got != -120 {
			t.Errorf("ambiguous negative transfer SignedAmount() = %v, want -120", got)
		}
	})

	t.Run("unknown type uses raw sign", func(t *testing.T) {
		if got := SignedAmount(TransactionRecord{Type: "adjustment", Amount: -40}, acct); got != -40 {
			t.Errorf("SignedAmount() = %v, want -40", got)
		}
		if got := SignedAmount(TransactionRecord{Type: "adjustment", Amount: 40}, acct); got != 40 {
			t.Errorf("SignedAmount() = %v, want 40", got)
		}
	})

	t.Run("empty account never matches transfer sides", func(t *testing.T) {
		tx := TransactionRecord{Type: "transfer", Amount: 55, From: "", To: "ACC-200"}
		if got := SignedAmount(tx, AccountContext{}); got != 55 {
			t.Errorf("SignedAmount() with zero account = %v, want 55", got)
		}
	})
}
