package http

import (
	"net/http"
	"strings"

	"gbank/internal/core"
	"gbank/internal/export"
	applog "gbank/internal/log"
	"gbank/internal/tabular"
)

// historySearchFields are the columns the history keyword search
// matches against.
var historySearchFields = []string{"_id", "type", "to", "from"}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	userID := sanitizeInput(r.PathValue("userID"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	acct, err := s.store.AccountByUser(r.Context(), userID)
	if err != nil {
		fields := applog.NewFields().WithOperation("account_lookup").WithUser(userID).WithError(err)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Account lookup failed", fields.ToSlice()...)
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	writeJSON(w, http.StatusOK, acct)
}

type historyResponse struct {
	Account  core.AccountContext `json:"account"`
	Summary  core.LedgerSummary  `json:"summary"`
	Rows     []tabular.Row       `json:"rows"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := sanitizeInput(r.PathValue("userID"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	view, err := s.loadLedger(r.Context(), userID)
	if err != nil {
		fields := applog.NewFields().WithOperation("ledger_build").WithUser(userID).WithError(err)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Ledger build failed", fields.ToSlice()...)
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	qs := ParseQueryState(r.URL.Query())
	rows := transactionRows(view.Ledger)
	pageRows, total := qs.Apply(rows, historySearchFields)

	writeJSON(w, http.StatusOK, historyResponse{
		Account:  view.Account,
		Summary:  view.Summary,
		Rows:     pageRows,
		Total:    total,
		Page:     qs.Page,
		PageSize: qs.PageSize,
	})
}

func (s *Server) handleStatementCSV(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".csv") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	userID := sanitizeInput(strings.TrimSuffix(file, ".csv"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	view, err := s.loadLedger(r.Context(), userID)
	if err != nil {
		fields := applog.NewFields().WithOperation("ledger_build").WithUser(userID).WithError(err)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Ledger build failed", fields.ToSlice()...)
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	body := export.StatementCSV(view.Account, view.Ledger, view.Summary)
	writeAttachment(w, "text/csv; charset=utf-8", "statement_"+userID+".csv", body)
}

func (s *Server) handleStatementSheets(w http.ResponseWriter, r *http.Request) {
	if s.statements == nil {
		writeError(w, http.StatusServiceUnavailable, "statement push is not configured")
		return
	}

	userID := sanitizeInput(r.PathValue("userID"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	view, err := s.loadLedger(r.Context(), userID)
	if err != nil {
		fields := applog.NewFields().WithOperation("ledger_build").WithUser(userID).WithError(err)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Ledger build failed", fields.ToSlice()...)
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	ref, err := s.statements.WriteStatement(r.Context(), userID, view.Account, view.Ledger, view.Summary)
	if err != nil {
		fields := applog.NewFields().WithOperation("statement_push").WithUser(userID).WithError(err)
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Statement push failed", fields.ToSlice()...)
		writeError(w, http.StatusBadGateway, "statement push failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ref": ref})
}

func (s *Server) handleEMICalc(w http.ResponseWriter, r *http.Request) {
	req, err := ParseEMIRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	quote := core.ComputeEMI(req.Principal, req.AnnualRate, req.Months)
	writeJSON(w, http.StatusOK, quote)
}

func transactionRows(ledger []core.EnrichedTransaction) []tabular.Row {
	rows := make([]tabular.Row, len(ledger))
	for i, tx := range ledger {
		rows[i] = tabular.Row{
			"_id":                     tx.ID,
			"type":                    tx.Type,
			"amount":                  tx.Amount,
			"signed_amount":           tx.SignedAmount,
			"normalized_timestamp_ms": tx.NormalizedTimestampMS,
			"balance_after":           tx.BalanceAfter,
			"to":                      tx.To,
			"from":                    tx.From,
		}
	}
	return rows
}
