package core

import "math"

// ComputeEMI computes the equated monthly installment for an
// amortizing loan, along with the total interest and total payment
// over the term.
//
// A non-positive principal or term is a defined edge case and returns
// an all-zero quote. A zero rate degenerates to straight division.
// No rounding happens here; callers round only for display. Negative
// rates are not validated, the caller constrains the input range.
func ComputeEMI(principal, annualRatePercent float64, months int) LoanQuote {
	quote := LoanQuote{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		Months:            months,
	}
	if principal <= 0 || months <= 0 {
		return quote
	}

	monthlyRate := annualRatePercent / 12 / 100
	n := float64(months)
	if monthlyRate == 0 {
		quote.EMI = principal / n
		quote.TotalPayment = quote.EMI * n
		quote.TotalInterest = quote.TotalPayment - principal
		return quote
	}

	growth := math.Pow(1+monthlyRate, n)
	quote.EMI = principal * monthlyRate * growth / (growth - 1)
	quote.TotalPayment = quote.EMI * n
	quote.TotalInterest = quote.TotalPayment - principal
	return quote
}
