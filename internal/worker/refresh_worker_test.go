package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gbank/internal/amqp"
	"gbank/internal/core"
)

type fakeStore struct {
	customers []core.Customer
	accounts  []core.Account
	loans     []core.Loan
	replaced  map[string][]core.TransactionRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{replaced: make(map[string][]core.TransactionRecord)}
}

func (f *fakeStore) UpsertCustomer(_ context.Context, c core.Customer) error {
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeStore) UpsertAccount(_ context.Context, a core.Account) error {
	f.accounts = append(f.accounts, a)
	return nil
}

func (f *fakeStore) UpsertLoan(_ context.Context, l core.Loan) error {
	f.loans = append(f.loans, l)
	return nil
}

func (f *fakeStore) ReplaceTransactions(_ context.Context, userID string, txs []core.TransactionRecord) error {
	f.replaced[userID] = txs
	return nil
}

func TestHandleEvent_RecordUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("customer", func(t *testing.T) {
		store := newFakeStore()
		w := New(store, "")

		ev, err := amqp.NewRecordUpsertEvent("customers", core.Customer{ID: "u1", Username: "alice"})
		if err != nil {
			t.Fatalf("NewRecordUpsertEvent() error = %v", err)
		}
		if err := w.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("HandleEvent() error = %v", err)
		}
		if len(store.customers) != 1 || store.customers[0].ID != "u1" {
			t.Errorf("customers = %+v, want one record u1", store.customers)
		}
	})

	t.Run("account", func(t *testing.T) {
		store := newFakeStore()
		w := New(store, "")

		ev, err := amqp.NewRecordUpsertEvent("accounts", core.Account{AccountNumber: "AC-1", Balance: 50, UserID: "u1"})
		if err != nil {
			t.Fatalf("NewRecordUpsertEvent() error = %v", err)
		}
		if err := w.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("HandleEvent() error = %v", err)
		}
		if len(store.accounts) != 1 || store.accounts[0].AccountNumber != "AC-1" {
			t.Errorf("accounts = %+v, want one record AC-1", store.accounts)
		}
	})

	t.Run("loan", func(t *testing.T) {
		store := newFakeStore()
		w := New(store, "")

		ev, err := amqp.NewRecordUpsertEvent("loans", core.Loan{ID: "l1", Status: "approved"})
		if err != nil {
			t.Fatalf("NewRecordUpsertEvent() error = %v", err)
		}
		if err := w.HandleEvent(ctx, ev); err != nil {
			t.Fatalf("HandleEvent() error = %v", err)
		}
		if len(store.loans) != 1 || store.loans[0].ID != "l1" {
			t.Errorf("loans = %+v, want one record l1", store.loans)
		}
	})

	t.Run("unknown collection is dropped without error", func(t *testing.T) {
		store := newFakeStore()
		w := New(store, "")

		ev, err := amqp.NewRecordUpsertEvent("sessions", map[string]string{"id": "x"})
		if err != nil {
			t.Fatalf("NewRecordUpsertEvent() error = %v", err)
		}
		if err := w.HandleEvent(ctx, ev); err != nil {
			t.Errorf("HandleEvent() error = %v, want nil for unknown collection", err)
		}
	})
}

func TestHandleEvent_LedgerTouched(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	w := New(store, "")

	txs := []core.TransactionRecord{
		{ID: "t1", Type: "deposit", Amount: 100, Timestamp: float64(1700000000)},
		{ID: "t2", Type: "withdraw", Amount: 25, Timestamp: "2023-11-14T22:13:20Z"},
	}
	ev, err := amqp.NewLedgerTouchedEvent("u1", txs)
	if err != nil {
		t.Fatalf("NewLedgerTouchedEvent() error = %v", err)
	}

	if err := w.HandleEvent(ctx, ev); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	got := store.replaced["u1"]
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("replaced[u1] = %+v, want t1 and t2", got)
	}
}

func TestHandleEvent_UnknownKind(t *testing.T) {
	store := newFakeStore()
	w := New(store, "")

	ev := amqp.Event{Kind: "record.deleted"}
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Errorf("HandleEvent() error = %v, want nil for unknown kind", err)
	}
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "customers.json"), []core.Customer{
		{ID: "u1", Username: "alice", Email: "alice@example.com"},
	})
	writeJSON(t, filepath.Join(dir, "accounts.json"), []core.Account{
		{AccountNumber: "AC-1", AccountType: "savings", Balance: 500, UserID: "u1"},
	})
	writeJSON(t, filepath.Join(dir, "loans.json"), []core.Loan{
		{ID: "l1", UserID: "u1", Amount: 1000, Months: 12, Status: "approved"},
	})
	writeJSON(t, filepath.Join(dir, "transactions.json"), map[string][]core.TransactionRecord{
		"u1": {{ID: "t1", Type: "deposit", Amount: 100, Timestamp: float64(1700000000)}},
	})

	store := newFakeStore()
	w := New(store, dir)

	if err := w.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	if len(store.customers) != 1 || store.customers[0].ID != "u1" {
		t.Errorf("customers = %+v, want u1", store.customers)
	}
	if len(store.accounts) != 1 || store.accounts[0].AccountNumber != "AC-1" {
		t.Errorf("accounts = %+v, want AC-1", store.accounts)
	}
	if len(store.loans) != 1 || store.loans[0].ID != "l1" {
		t.Errorf("loans = %+v, want l1", store.loans)
	}
	if got := store.replaced["u1"]; len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("replaced[u1] = %+v, want t1", got)
	}
}

func TestSweep_MissingDirectory(t *testing.T) {
	store := newFakeStore()
	w := New(store, filepath.Join(t.TempDir(), "nope"))

	if err := w.Sweep(context.Background()); err != nil {
		t.Errorf("Sweep() error = %v, want nil for missing snapshot", err)
	}
	if len(store.customers) != 0 || len(store.replaced) != 0 {
		t.Error("Sweep over a missing directory should apply nothing")
	}
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
