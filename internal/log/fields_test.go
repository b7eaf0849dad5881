package log

import (
	"errors"
	"testing"
)

func fieldsToMap(slice []any) map[string]any {
	out := make(map[string]any, len(slice)/2)
	for i := 0; i+1 < len(slice); i += 2 {
		out[slice[i].(string)] = slice[i+1]
	}
	return out
}

func TestLogFieldsBuilder(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentHTTP).
		WithRequestID("req_1").
		WithClientIP("10.0.0.9").
		WithOperation("ledger_build").
		WithUser("u1").
		WithHTTPRequest("GET", "/accounts/u1", "q=x", "test-agent").
		WithHTTPResponse(200, 12, true)

	got := fieldsToMap(fields.ToSlice())
	want := map[string]any{
		FieldComponent:  ComponentHTTP,
		FieldRequestID:  "req_1",
		FieldClientIP:   "10.0.0.9",
		FieldOperation:  "ledger_build",
		FieldUserID:     "u1",
		FieldMethod:     "GET",
		FieldPath:       "/accounts/u1",
		FieldQuery:      "q=x",
		FieldUserAgent:  "test-agent",
		FieldStatusCode: 200,
		FieldDuration:   int64(12),
		FieldSuccess:    true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %v, want %v", k, got[k], v)
		}
	}
}

func TestLogFieldsWithError(t *testing.T) {
	got := fieldsToMap(NewFields().WithError(errors.New("boom")).ToSlice())
	if got[FieldError] != "boom" {
		t.Errorf("error field = %v, want boom", got[FieldError])
	}

	empty := NewFields().WithError(nil)
	if len(empty) != 0 {
		t.Errorf("nil error should add nothing, got %v", empty)
	}
}
