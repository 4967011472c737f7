package loans

import (
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// SACAmortization returns the constant principal portion of each SAC payment.
func SACAmortization(principal float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	return principal / float64(termMonths)
}

// SACFirstInstallment returns the first (and largest) SAC payment.
func SACFirstInstallment(principal, monthlyRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	return SACAmortization(principal, termMonths) + InterestPayment(principal, monthlyRate)
}

// SACBalance returns the outstanding SAC balance after k periods.
func SACBalance(principal float64, termMonths, k int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if k >= termMonths {
		return 0
	}
	return mathutil.NonNegative(principal - SACAmortization(principal, termMonths)*float64(k))
}

// SACInterestPaid returns the cumulative interest paid over the first k SAC
// periods. The balance before period i is P·(1 − i/n), so summing
// balance_i·r for i = 0..k−1 collapses to P·r·(k − (k−1)k/(2n)).
func SACInterestPaid(principal, monthlyRate float64, termMonths, k int) float64 {
	if termMonths <= 0 || k <= 0 {
		return 0
	}
	kf := float64(k)
	n := float64(termMonths)
	return mathutil.NonNegative(principal * monthlyRate * (kf - (kf-1)*kf/(2*n)))
}

// SACProgress summarizes a SAC loan after k periods.
func SACProgress(principal, monthlyRate float64, termMonths, k int) Progress {
	k = mathutil.ClampInt(k, 0, termMonths)
	if termMonths <= 0 {
		return Progress{Principal: principal, MonthlyRate: monthlyRate}
	}

	balance := SACBalance(principal, termMonths, k)
	principalPaid := principal - balance
	interestPaid := SACInterestPaid(principal, monthlyRate, termMonths, k)

	return Progress{
		Principal:        principal,
		MonthlyRate:      monthlyRate,
		TermMonths:       termMonths,
		MonthsElapsed:    k,
		PrincipalPaid:    principalPaid,
		InterestPaid:     interestPaid,
		RemainingBalance: balance,
		TotalPaid:        principalPaid + interestPaid,
	}
}
