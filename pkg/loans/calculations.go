// Package loans provides closed-form amortization utilities for the PRICE
// (constant payment) and SAC (constant amortization) systems and for
// interest-free seller installments.
package loans

import (
	"math"

	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// Progress holds the state of a loan or installment plan after a number of
// monthly periods have been paid.
type Progress struct {
	Principal        float64
	MonthlyRate      float64
	TermMonths       int
	MonthsElapsed    int
	PrincipalPaid    float64
	InterestPaid     float64
	RemainingBalance float64
	TotalPaid        float64
}

// MonthlyRate converts an annual nominal interest rate expressed as a
// percentage into the monthly rate used by the amortization formulas. No
// compounding conversion is applied.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// InterestPayment calculates the interest accrued on a balance over one period.
func InterestPayment(balance, monthlyRate float64) float64 {
	return balance * monthlyRate
}

// PricePayment calculates the constant monthly payment of a PRICE (French)
// loan using the standard annuity formula.
func PricePayment(principal, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	n := float64(termMonths)
	if monthlyRate <= 0 {
		// For zero interest, simply divide the principal by term
		return principal / n
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -n))
}

// PriceBalance returns the outstanding balance of a PRICE loan after k
// payments. The balance is floored at zero and is exactly zero once the full
// term has been paid.
func PriceBalance(principal, monthlyRate float64, termMonths, k int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if k <= 0 {
		return mathutil.NonNegative(principal)
	}
	if k >= termMonths {
		// We will get machine error otherwise so just set to 0.
		return 0
	}

	if monthlyRate <= 0 {
		return mathutil.NonNegative(principal - principal/float64(termMonths)*float64(k))
	}

	payment := PricePayment(principal, monthlyRate, termMonths)
	growth := math.Pow(1+monthlyRate, float64(k))
	balance := principal*growth - payment*(growth-1)/monthlyRate
	return mathutil.NonNegative(balance)
}

// PriceProgress summarizes a PRICE loan after k payments. Interest paid is the
// difference between the payments made and the principal retired, floored at
// zero.
func PriceProgress(principal, monthlyRate float64, termMonths, k int) Progress {
	k = mathutil.ClampInt(k, 0, termMonths)
	payment := PricePayment(principal, monthlyRate, termMonths)
	balance := PriceBalance(principal, monthlyRate, termMonths, k)
	totalPaid := payment * float64(k)
	principalPaid := principal - balance
	if termMonths <= 0 {
		principalPaid = 0
	}

	return Progress{
		Principal:        principal,
		MonthlyRate:      monthlyRate,
		TermMonths:       termMonths,
		MonthsElapsed:    k,
		PrincipalPaid:    principalPaid,
		InterestPaid:     mathutil.NonNegative(totalPaid - principalPaid),
		RemainingBalance: balance,
		TotalPaid:        totalPaid,
	}
}
