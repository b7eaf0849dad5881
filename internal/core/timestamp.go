package core

import (
	"math"
	"time"
)

// Epochs below this magnitude are seconds, above it milliseconds.
// Seconds-scale values stay under 1e12 until the year 33658, so any
// realistic transaction date is classified correctly.
const millisBoundary = 1e12

// Accepted string layouts, tried in order. Mirrors what the backends
// have historically emitted: RFC 3339 first, then a few laxer forms.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// NormalizeTimestamp converts a heterogeneous timestamp value into
// canonical epoch milliseconds. Numeric values with magnitude below
// 1e12 are interpreted as epoch seconds and scaled up; larger values
// are already milliseconds. Strings are parsed against the known
// layouts. Anything unparseable normalizes to 0, which downstream
// consumers treat as "unknown, sorts last when descending".
func NormalizeTimestamp(v any) int64 {
	switch t := v.(type) {
	case float64:
		return normalizeNumeric(t)
	case float32:
		return normalizeNumeric(float64(t))
	case int:
		return normalizeNumeric(float64(t))
	case int64:
		return normalizeNumeric(float64(t))
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UnixMilli()
			}
		}
		return 0
	default:
		return 0
	}
}

func normalizeNumeric(v float64) int64 {
	if math.Abs(v) < millisBoundary {
		return int64(v * 1000)
	}
	return int64(v)
}
