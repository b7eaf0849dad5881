package core

import (
	"math"
	"testing"
)

func TestComputeEMIZeroRate(t *testing.T) {
	quote := ComputeEMI(12000, 0, 12)
	if quote.EMI != 1000 {
		t.Errorf("EMI = %v, want exactly 1000", quote.EMI)
	}
	if quote.TotalInterest != 0 {
		t.Errorf("TotalInterest = %v, want 0", quote.TotalInterest)
	}
	if quote.TotalPayment != 12000 {
		t.Errorf("TotalPayment = %v, want 12000", quote.TotalPayment)
	}
}

func TestComputeEMIGeneralCase(t *testing.T) {
	quote := ComputeEMI(100000, 12, 12)

	round2 := func(v float64) float64 { return math.Round(v*100) / 100 }
	if got := round2(quote.EMI); got != 8884.88 {
		t.Errorf("EMI = %v, want 8884.88 after rounding", got)
	}
	if round2(quote.TotalPayment) != round2(quote.EMI*12) {
		t.Errorf("TotalPayment = %v, want emi*months", quote.TotalPayment)
	}
	if round2(quote.TotalInterest) != round2(quote.TotalPayment-100000) {
		t.Errorf("TotalInterest = %v, want total-principal", quote.TotalInterest)
	}
}

func TestComputeEMIDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"zero principal", 0, 10, 12},
		{"negative principal", -500, 10, 12},
		{"zero months", 10000, 10, 0},
		{"negative months", 10000, 10, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := ComputeEMI(tt.principal, tt.rate, tt.months)
			if quote.EMI != 0 || quote.TotalInterest != 0 || quote.TotalPayment != 0 {
				t.Errorf("ComputeEMI(%v, %v, %d) = %+v, want all-zero quote",
					tt.principal, tt.rate, tt.months, quote)
			}
		})
	}
}

func TestComputeEMIIdempotent(t *testing.T) {
	a := ComputeEMI(50000, 10, 24)
	b := ComputeEMI(50000, 10, 24)
	if a != b {
		t.Errorf("repeated invocation differs: %+v vs %+v", a, b)
	}
}
