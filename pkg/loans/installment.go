package loans

import (
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// InstallmentAmount returns the interest-free monthly installment for an
// amount split into count equal parts.
func InstallmentAmount(amount float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return amount / float64(count)
}

// InstallmentProgress summarizes an interest-free installment plan after k
// installments. Once k reaches count the whole amount is considered paid so
// that the balance is exactly zero.
func InstallmentProgress(amount float64, count, k int) Progress {
	k = mathutil.ClampInt(k, 0, count)
	if count <= 0 {
		return Progress{Principal: amount}
	}

	monthly := InstallmentAmount(amount, count)
	principalPaid := monthly * float64(k)
	balance := mathutil.NonNegative(amount - principalPaid)
	if k >= count {
		principalPaid = amount
		balance = 0
	}

	return Progress{
		Principal:        amount,
		TermMonths:       count,
		MonthsElapsed:    k,
		PrincipalPaid:    principalPaid,
		RemainingBalance: balance,
		TotalPaid:        principalPaid,
	}
}
