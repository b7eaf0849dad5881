// Package worker applies record-change events from the ledger backend
// to the SQLite read model, with a periodic snapshot sweep as a backup
// for lost messages.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gbank/internal/amqp"
	"gbank/internal/backend/memory"
	"gbank/internal/core"
)

// Store is the subset of the repository the worker writes to.
type Store interface {
	UpsertCustomer(ctx context.Context, c core.Customer) error
	UpsertAccount(ctx context.Context, a core.Account) error
	UpsertLoan(ctx context.Context, l core.Loan) error
	ReplaceTransactions(ctx context.Context, userID string, txs []core.TransactionRecord) error
}

type RefreshWorker struct {
	store   Store
	dataDir string
}

func New(store Store, dataDir string) *RefreshWorker {
	return &RefreshWorker{store: store, dataDir: dataDir}
}

// HandleEvent applies one event to the read model. Events the worker
// cannot act on are logged and dropped so they don't requeue forever.
func (w *RefreshWorker) HandleEvent(ctx context.Context, ev amqp.Event) error {
	switch ev.Kind {
	case amqp.KindRecordUpsert:
		upsert, err := ev.DecodeRecordUpsert()
		if err != nil {
			slog.WarnContext(ctx, "Dropping undecodable record upsert", "error", err)
			return nil
		}
		return w.applyUpsert(ctx, upsert)

	case amqp.KindLedgerTouched:
		touched, err := ev.DecodeLedgerTouched()
		if err != nil {
			slog.WarnContext(ctx, "Dropping undecodable ledger event", "error", err)
			return nil
		}
		if touched.UserID == "" {
			slog.WarnContext(ctx, "Dropping ledger event without user ID")
			return nil
		}
		if err := w.store.ReplaceTransactions(ctx, touched.UserID, touched.Transactions); err != nil {
			return fmt.Errorf("replace transactions for %s: %w", touched.UserID, err)
		}
		return nil

	default:
		slog.WarnContext(ctx, "Dropping event of unknown kind", "kind", ev.Kind)
		return nil
	}
}

func (w *RefreshWorker) applyUpsert(ctx context.Context, upsert amqp.RecordUpsert) error {
	switch upsert.Collection {
	case "customers":
		var c core.Customer
		if err := json.Unmarshal(upsert.Record, &c); err != nil {
			slog.WarnContext(ctx, "Dropping malformed customer record", "error", err)
			return nil
		}
		if err := w.store.UpsertCustomer(ctx, c); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.ID, err)
		}
		slog.InfoContext(ctx, "Applied customer upsert", "id", c.ID)
		return nil

	case "accounts":
		var a core.Account
		if err := json.Unmarshal(upsert.Record, &a); err != nil {
			slog.WarnContext(ctx, "Dropping malformed account record", "error", err)
			return nil
		}
		if err := w.store.UpsertAccount(ctx, a); err != nil {
			return fmt.Errorf("upsert account %s: %w", a.AccountNumber, err)
		}
		slog.InfoContext(ctx, "Applied account upsert", "account_number", a.AccountNumber)
		return nil

	case "loans":
		var l core.Loan
		if err := json.Unmarshal(upsert.Record, &l); err != nil {
			slog.WarnContext(ctx, "Dropping malformed loan record", "error", err)
			return nil
		}
		if err := w.store.UpsertLoan(ctx, l); err != nil {
			return fmt.Errorf("upsert loan %s: %w", l.ID, err)
		}
		slog.InfoContext(ctx, "Applied loan upsert", "id", l.ID)
		return nil

	default:
		slog.WarnContext(ctx, "Dropping upsert for unknown collection", "collection", upsert.Collection)
		return nil
	}
}

// Sweep reloads the backend's snapshot directory and upserts every
// record. It recovers the read model after missed events or worker
// downtime; the cron schedule lives in the worker binary.
func (w *RefreshWorker) Sweep(ctx context.Context) error {
	snapshot := memory.NewFromFiles(w.dataDir)

	customers, _ := snapshot.ListCustomers(ctx)
	for _, c := range customers {
		if err := w.store.UpsertCustomer(ctx, c); err != nil {
			return fmt.Errorf("sweep customer %s: %w", c.ID, err)
		}
	}

	accounts, _ := snapshot.ListAccounts(ctx)
	for _, a := range accounts {
		if err := w.store.UpsertAccount(ctx, a); err != nil {
			return fmt.Errorf("sweep account %s: %w", a.AccountNumber, err)
		}
	}

	loans, _ := snapshot.ListLoans(ctx)
	for _, l := range loans {
		if err := w.store.UpsertLoan(ctx, l); err != nil {
			return fmt.Errorf("sweep loan %s: %w", l.ID, err)
		}
	}

	txCount := 0
	for userID, txs := range snapshot.AllTransactions() {
		if err := w.store.ReplaceTransactions(ctx, userID, txs); err != nil {
			return fmt.Errorf("sweep transactions for %s: %w", userID, err)
		}
		txCount += len(txs)
	}

	slog.InfoContext(ctx, "Snapshot sweep completed",
		"customers", len(customers),
		"accounts", len(accounts),
		"loans", len(loans),
		"transactions", txCount)

	return nil
}
