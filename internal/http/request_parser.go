package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gbank/internal/tabular"
)

const (
	defaultPageSize = 25
	maxPageSize     = 500
)

// filterParams are the query parameters treated as exact-match column
// filters rather than keyword search.
var filterParams = []string{"status", "account_type"}

// ParseQueryState builds a table query from URL parameters: q, sort,
// dir, page, page_size, and the exact-match filters.
func ParseQueryState(query url.Values) *tabular.QueryState {
	qs := tabular.NewQueryState(defaultPageSize)

	qs.Keyword = sanitizeInput(query.Get("q"))

	if field := sanitizeInput(query.Get("sort")); field != "" {
		direction := tabular.Asc
		if strings.EqualFold(strings.TrimSpace(query.Get("dir")), "desc") {
			direction = tabular.Desc
		}
		qs.Sort = tabular.SortSpec{Field: field, Direction: direction}
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			qs.Page = page
		}
	}
	if v := strings.TrimSpace(query.Get("page_size")); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			if size > maxPageSize {
				size = maxPageSize
			}
			qs.PageSize = size
		}
	}

	for _, param := range filterParams {
		if v := sanitizeInput(query.Get(param)); v != "" {
			qs.Filters[param] = v
		}
	}

	return qs
}

// EMIRequest is the calculator input.
type EMIRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months"`
}

// ParseEMIRequest decodes and validates a calculator request body.
func ParseEMIRequest(r *http.Request) (EMIRequest, error) {
	var req EMIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return EMIRequest{}, fmt.Errorf("invalid request body: %w", err)
	}

	if math.IsNaN(req.Principal) || math.IsInf(req.Principal, 0) || req.Principal < 0 {
		return EMIRequest{}, errors.New("principal must be a non-negative number")
	}
	if math.IsNaN(req.AnnualRate) || math.IsInf(req.AnnualRate, 0) || req.AnnualRate < 0 {
		return EMIRequest{}, errors.New("annual rate must be a non-negative number")
	}
	if req.Months < 0 {
		return EMIRequest{}, errors.New("months must be a non-negative integer")
	}

	return req, nil
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline, and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
