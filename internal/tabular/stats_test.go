package tabular

import "testing"

func TestSumNumeric(t *testing.T) {
	rows := []Row{
		{"balance": float64(100)},
		{"balance": float64(250.5)},
		{"balance": "not a number"},
		{},
	}
	if got := SumNumeric(rows, "balance"); got != 350.5 {
		t.Errorf("SumNumeric = %v, want 350.5", got)
	}
}

func TestCountWhere(t *testing.T) {
	rows := []Row{
		{"status": "pending"},
		{"status": "approved"},
		{"status": "pending"},
	}
	if got := CountWhere(rows, "status", "pending"); got != 2 {
		t.Errorf("CountWhere = %d, want 2", got)
	}
	if got := CountWhere(rows, "status", "rejected"); got != 0 {
		t.Errorf("CountWhere = %d, want 0", got)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name        string
		paid, total float64
		want        int
	}{
		{"zero total is defined zero", 0, 0, 0},
		{"paid with zero total still zero", 10, 0, 0},
		{"quarter", 50, 200, 25},
		{"rounds half up", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"complete", 12, 12, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(tt.paid, tt.total); got != tt.want {
				t.Errorf("CompletionRate(%v, %v) = %d, want %d", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}
