// Package tabular implements the generic filter/sort/paginate/flatten
// pipeline used by the administrative views. It operates on rows as
// decoded from JSON or the read model (map[string]any), so the same
// engine serves customers, accounts, and loans without per-collection
// code.
//
// Every operation is pure and returns fresh slices; callers re-invoke
// the pipeline on each query-state change.
package tabular

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Row is one flat or nested record.
type Row = map[string]any

// Direction of a sort.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Collators keep mutable iterator state across CompareString calls, so
// one instance must never be shared between goroutines. Each Sort
// checks one out for the duration of the sort.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English, collate.Loose) },
}

// Filter keeps the rows where any of the named fields, coerced to a
// string, contains the keyword case-insensitively. An empty keyword
// passes everything through.
func Filter(rows []Row, keyword string, fields []string) []Row {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return append([]Row(nil), rows...)
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		for _, field := range fields {
			v, ok := row[field]
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(stringify(v)), keyword) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// FilterExact keeps the rows whose field stringifies to exactly value.
// An empty value passes everything through; it plays the role of the
// "all" option in the view's dropdown filters.
func FilterExact(rows []Row, field, value string) []Row {
	if value == "" {
		return append([]Row(nil), rows...)
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if stringify(row[field]) == value {
			out = append(out, row)
		}
	}
	return out
}

// Sort orders rows by the named field. An empty field returns the
// input unchanged: there is no implicit default ordering. When both
// values are numeric they compare numerically, otherwise both are
// coerced to strings and compared with locale-aware collation. The
// sort is stable, so ties keep their input order.
func Sort(rows []Row, field, direction string) []Row {
	out := append([]Row(nil), rows...)
	if field == "" {
		return out
	}
	sign := 1
	if direction == Desc {
		sign = -1
	}
	col := collators.Get().(*collate.Collator)
	defer collators.Put(col)
	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(col, out[i][field], out[j][field])*sign < 0
	})
	return out
}

// Paginate slices out one page and reports the total row count. Pages
// are 1-based; an out-of-range page yields an empty slice but still
// the correct total, never an error.
func Paginate(rows []Row, page, pageSize int) ([]Row, int) {
	total := len(rows)
	if page < 1 || pageSize < 1 {
		return []Row{}, total
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []Row{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return append([]Row(nil), rows[start:end]...), total
}

// compareValues is the type-aware comparator: numeric when both sides
// are numbers, collated strings otherwise. Missing values coerce to
// the empty string, which sorts first ascending.
func compareValues(col *collate.Collator, a, b any) int {
	fa, aNum := asNumber(a)
	fb, bNum := asNumber(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return col.CompareString(stringify(a), stringify(b))
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		// Render integral floats without a trailing ".0" so numeric
		// fields read the way the backend sent them.
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
