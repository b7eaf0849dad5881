// Package storage implements the SQLite read model. The worker keeps
// it in sync with record-change events from the ledger backend; the
// HTTP layer only ever reads from it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gbank/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AccountByUser implements backend.AccountReader.
func (r *SQLiteRepository) AccountByUser(ctx context.Context, userID string) (core.AccountContext, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT account_number, balance FROM accounts WHERE user_id = ? LIMIT 1`, userID)

	var acct core.AccountContext
	if err := row.Scan(&acct.AccountNumber, &acct.Balance); err != nil {
		if err == sql.ErrNoRows {
			return core.AccountContext{}, fmt.Errorf("no account for user %s", userID)
		}
		return core.AccountContext{}, fmt.Errorf("query account: %w", err)
	}
	return acct, nil
}

// ListTransactions implements backend.TransactionLister. The stored
// timestamp keeps its original representation (numeric or string) so
// normalization stays in core, where it is tested.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID string) ([]core.TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tx_id, type, amount, timestamp_raw, timestamp_numeric, balance_after, to_account, from_account
		 FROM transactions WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionRecord
	for rows.Next() {
		var (
			tx        core.TransactionRecord
			rawTS     string
			numericTS bool
		)
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Amount, &rawTS, &numericTS,
			&tx.BalanceAfter, &tx.To, &tx.From); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if numericTS {
			if f, err := strconv.ParseFloat(rawTS, 64); err == nil {
				tx.Timestamp = f
			} else {
				tx.Timestamp = rawTS
			}
		} else {
			tx.Timestamp = rawTS
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// ListCustomers implements backend.CustomerLister.
func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, email FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []core.Customer
	for rows.Next() {
		var c core.Customer
		if err := rows.Scan(&c.ID, &c.Username, &c.Email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListAccounts implements backend.AccountLister.
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT account_number, account_type, balance, user_id FROM accounts ORDER BY account_number`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.AccountNumber, &a.AccountType, &a.Balance, &a.UserID); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListLoans implements backend.LoanLister.
func (r *SQLiteRepository) ListLoans(ctx context.Context) ([]core.Loan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, months, annual_rate, emi, status, emis_paid FROM loans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var out []core.Loan
	for rows.Next() {
		var l core.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.Amount, &l.Months, &l.AnnualRate,
			&l.EMI, &l.Status, &l.EMIsPaid); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// UpsertCustomer inserts or replaces a customer record.
func (r *SQLiteRepository) UpsertCustomer(ctx context.Context, c core.Customer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, username, email) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET username = excluded.username, email = excluded.email`,
		c.ID, c.Username, c.Email)
	if err != nil {
		return fmt.Errorf("upsert customer: %w", err)
	}
	return nil
}

// UpsertAccount inserts or replaces an account record.
func (r *SQLiteRepository) UpsertAccount(ctx context.Context, a core.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (account_number, account_type, balance, user_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT(account_number) DO UPDATE SET
		   account_type = excluded.account_type,
		   balance = excluded.balance,
		   user_id = excluded.user_id`,
		a.AccountNumber, a.AccountType, a.Balance, a.UserID)
	if err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

// UpsertLoan inserts or replaces a loan record.
func (r *SQLiteRepository) UpsertLoan(ctx context.Context, l core.Loan) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO loans (id, user_id, amount, months, annual_rate, emi, status, emis_paid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   user_id = excluded.user_id,
		   amount = excluded.amount,
		   months = excluded.months,
		   annual_rate = excluded.annual_rate,
		   emi = excluded.emi,
		   status = excluded.status,
		   emis_paid = excluded.emis_paid`,
		l.ID, l.UserID, l.Amount, l.Months, l.AnnualRate, l.EMI, l.Status, l.EMIsPaid)
	if err != nil {
		return fmt.Errorf("upsert loan: %w", err)
	}
	return nil
}

// AppendTransaction stores one raw transaction for a user. The
// timestamp is persisted exactly as received; timestampNumeric records
// whether it arrived as a number so reads can restore the shape.
func (r *SQLiteRepository) AppendTransaction(ctx context.Context, userID string, tx core.TransactionRecord) error {
	rawTS, numeric := encodeTimestamp(tx.Timestamp)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (tx_id, user_id, type, amount, timestamp_raw, timestamp_numeric, balance_after, to_account, from_account)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, userID, tx.Type, tx.Amount, rawTS, numeric, tx.BalanceAfter, tx.To, tx.From)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// ReplaceTransactions swaps a user's full transaction list in one
// transaction. Used by the reconciliation sweep.
func (r *SQLiteRepository) ReplaceTransactions(ctx context.Context, userID string, txs []core.TransactionRecord) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range txs {
		rawTS, numeric := encodeTimestamp(tx.Timestamp)
		if _, err := dbTx.ExecContext(ctx,
			`INSERT INTO transactions (tx_id, user_id, type, amount, timestamp_raw, timestamp_numeric, balance_after, to_account, from_account)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, userID, tx.Type, tx.Amount, rawTS, numeric, tx.BalanceAfter, tx.To, tx.From); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Replaced transaction list", "user_id", userID, "count", len(txs))
	return nil
}

func encodeTimestamp(v any) (raw string, numeric bool) {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case string:
		return t, false
	default:
		return "", false
	}
}
