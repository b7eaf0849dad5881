package tabular

import "math"

// Reductions used by the KPI aggregation. They compose with Filter and
// FilterExact over the same row slices the views display, so the
// numbers on the cards always agree with the tables.

// SumNumeric adds up the numeric values of field across rows.
// Non-numeric and missing values count as zero.
func SumNumeric(rows []Row, field string) float64 {
	var sum float64
	for _, row := range rows {
		if n, ok := asNumber(row[field]); ok {
			sum += n
		}
	}
	return sum
}

// CountWhere counts the rows whose field stringifies to exactly value.
func CountWhere(rows []Row, field, value string) int {
	count := 0
	for _, row := range rows {
		if stringify(row[field]) == value {
			count++
		}
	}
	return count
}

// CompletionRate returns round(paid/total*100). A zero total is a
// defined 0, never a division-by-zero NaN.
func CompletionRate(paid, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(paid / total * 100))
}
