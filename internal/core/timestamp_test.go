package core

import "testing"

func TestNormalizeTimestampNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"epoch seconds scale up", float64(1700000000), 1700000000000},
		{"epoch millis pass through", float64(1700000000000), 1700000000000},
		{"zero stays zero", float64(0), 0},
		{"boundary value is millis", float64(1e12), 1000000000000},
		{"just below boundary is seconds", float64(999999999999), 999999999999000},
		{"int seconds", int(1600000000), 1600000000000},
		{"int64 millis", int64(1600000000000), 1600000000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTimestamp(tt.in); got != tt.want {
				t.Errorf("NormalizeTimestamp(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTimestampStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"rfc3339", "2023-11-14T22:13:20Z", 1700000000000},
		{"rfc3339 with offset", "2023-11-15T03:43:20+05:30", 1700000000000},
		{"date only", "2023-11-14", 1699920000000},
		{"space separated", "2023-11-14 22:13:20", 1700000000000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTimestamp(tt.in); got != tt.want {
				t.Errorf("NormalizeTimestamp(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTimestampMalformed(t *testing.T) {
	// Malformed input fails closed to epoch 0 so it sorts last under
	// descending order instead of raising an error.
	malformed := []any{"not a date", "", "14/11/2023", nil, true, []string{"x"}}
	for _, in := range malformed {
		if got := NormalizeTimestamp(in); got != 0 {
			t.Errorf("NormalizeTimestamp(%v) = %d, want 0", in, got)
		}
	}
}
