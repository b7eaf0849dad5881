package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gbank/internal/admin"
	"gbank/internal/export"
	applog "gbank/internal/log"
	"gbank/internal/tabular"
)

var errUnknownCollection = errors.New("unknown collection")

func (s *Server) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	logger := applog.FromContext(r.Context())

	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Customer list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}
	accounts, err := s.store.ListAccounts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Account list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}
	loans, err := s.store.ListLoans(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Loan list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load overview")
		return
	}

	writeJSON(w, http.StatusOK, admin.BuildOverview(customers, accounts, loans))
}

type collectionResponse struct {
	Collection string        `json:"collection"`
	Rows       []tabular.Row `json:"rows"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

func (s *Server) handleAdminCollection(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	if _, known := admin.SearchFields[collection]; !known {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	rows, err := s.collectionRows(r.Context(), collection)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Collection load failed",
			"collection", collection, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load collection")
		return
	}

	qs := ParseQueryState(r.URL.Query())
	pageRows, total := qs.Apply(rows, admin.SearchFields[collection])

	writeJSON(w, http.StatusOK, collectionResponse{
		Collection: collection,
		Rows:       pageRows,
		Total:      total,
		Page:       qs.Page,
		PageSize:   qs.PageSize,
	})
}

func (s *Server) handleAdminExportCSV(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	rows, err := s.exportRows(r, collection)
	if err != nil {
		s.writeExportError(w, r, collection, err)
		return
	}

	body := export.RowsCSV(rows)
	writeAttachment(w, "text/csv; charset=utf-8", collection+".csv", body)
}

func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	collection := r.PathValue("collection")
	rows, err := s.exportRows(r, collection)
	if err != nil {
		s.writeExportError(w, r, collection, err)
		return
	}

	body, err := export.RowsXLSX(collection, rows)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Workbook build failed",
			"collection", collection, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}
	writeAttachment(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		collection+".xlsx", body)
}

// writeExportError distinguishes a bad collection name from a failure
// loading a known collection.
func (s *Server) writeExportError(w http.ResponseWriter, r *http.Request, collection string, err error) {
	if errors.Is(err, errUnknownCollection) {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Collection load failed",
		"collection", collection, "error", err)
	writeError(w, http.StatusInternalServerError, "failed to load collection")
}

// exportRows applies the current filters and sort but not pagination:
// exports always cover the whole filtered result set.
func (s *Server) exportRows(r *http.Request, collection string) ([]tabular.Row, error) {
	if _, known := admin.SearchFields[collection]; !known {
		return nil, fmt.Errorf("%w %q", errUnknownCollection, collection)
	}
	rows, err := s.collectionRows(r.Context(), collection)
	if err != nil {
		return nil, err
	}

	qs := ParseQueryState(r.URL.Query())
	for field, value := range qs.Filters {
		rows = tabular.FilterExact(rows, field, value)
	}
	rows = tabular.Filter(rows, qs.Keyword, admin.SearchFields[collection])
	rows = tabular.Sort(rows, qs.Sort.Field, qs.Sort.Direction)
	return rows, nil
}

// collectionRows loads one admin collection as rows, cached per
// collection name.
func (s *Server) collectionRows(ctx context.Context, collection string) ([]tabular.Row, error) {
	if rows, found := s.rowsCache.Get(collection); found {
		return rows, nil
	}

	var rows []tabular.Row
	switch collection {
	case "customers":
		customers, err := s.store.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		rows = admin.CustomerRows(customers)
	case "accounts":
		accounts, err := s.store.ListAccounts(ctx)
		if err != nil {
			return nil, err
		}
		rows = admin.AccountRows(accounts)
	case "loans":
		loans, err := s.store.ListLoans(ctx)
		if err != nil {
			return nil, err
		}
		rows = admin.LoanRows(loans)
	default:
		return nil, fmt.Errorf("%w %q", errUnknownCollection, collection)
	}

	s.rowsCache.Set(collection, rows)
	return rows, nil
}
