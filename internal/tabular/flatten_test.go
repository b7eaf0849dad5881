package tabular

import "testing"

func TestFlatten(t *testing.T) {
	row := Row{
		"_id":     "u1",
		"balance": float64(900),
		"profile": map[string]any{
			"country": "India",
			"contact": map[string]any{"phone": "555-0101"},
		},
		"tags": []any{"vip", "savings"},
	}

	flat := Flatten(row)

	tests := []struct {
		key, want string
	}{
		{"_id", "u1"},
		{"balance", "900"},
		{"profile.country", "India"},
		{"profile.contact.phone", "555-0101"},
		{"tags", "vip|savings"},
	}
	for _, tt := range tests {
		if got := flat[tt.key]; got != tt.want {
			t.Errorf("flat[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}
	if len(flat) != len(tests) {
		t.Errorf("len(flat) = %d, want %d", len(flat), len(tests))
	}
}

func TestFlattenHeaders(t *testing.T) {
	rows := []Row{
		{"b": "1", "a": "2"},
		{"c": map[string]any{"x": "3"}},
	}
	headers := FlattenHeaders(rows)
	want := []string{"a", "b", "c.x"}
	if len(headers) != len(want) {
		t.Fatalf("headers = %v, want %v", headers, want)
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("headers[%d] = %q, want %q", i, headers[i], want[i])
		}
	}
}
