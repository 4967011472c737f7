// Package rental implements the simpler rental-yield calculator used by the
// rental analysis path: monthly cash flow, ROI, cap rate, payback period and
// risk evaluation for a property held for ongoing rent rather than resold.
//
// Unlike the viability engine, ROI treats a zero initial investment as an
// error instead of degrading to zero.
package rental

import (
	"errors"
	"math"

	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// ErrZeroInitialInvestment is returned by ROI when there is no invested capital.
var ErrZeroInitialInvestment = errors.New("initial investment must be greater than zero to compute ROI")

// Input describes a rental property.
type Input struct {
	PurchasePrice     float64
	InitialInvestment float64
	LoanAmount        float64
	MonthlyRent       float64
	MonthlyExpenses   float64
	AnnualPropertyTax float64
	LoanInstallment   float64
}

// Risk holds the rental risk flags.
type Risk struct {
	NegativeCashFlow bool `json:"negativeCashFlow"`
	LowROI           bool `json:"lowROI"`
	HighLeverage     bool `json:"highLeverage"`
}

// Metrics bundles the rental indicators. PaybackYears may be +Inf, so
// callers encoding it to JSON must map it first.
type Metrics struct {
	MonthlyCashFlow float64
	AnnualCashFlow  float64
	ROI             float64
	CapRate         float64
	PaybackYears    float64
	LeverageRatio   float64
	Risk            Risk
}

// MonthlyCashFlow is rent minus expenses, the monthly share of the property
// tax and the loan installment.
func MonthlyCashFlow(in Input) float64 {
	return in.MonthlyRent - in.MonthlyExpenses - in.AnnualPropertyTax/constants.MonthsPerYear - in.LoanInstallment
}

// AnnualCashFlow is twelve months of cash flow.
func AnnualCashFlow(in Input) float64 {
	return MonthlyCashFlow(in) * constants.MonthsPerYear
}

// ROI is the annual cash flow over the initial investment.
func ROI(in Input) (float64, error) {
	if in.InitialInvestment == 0 {
		return 0, ErrZeroInitialInvestment
	}
	return AnnualCashFlow(in) / in.InitialInvestment, nil
}

// CapRate is the annual rent net of property tax over the purchase price,
// independent of financing.
func CapRate(in Input) float64 {
	return mathutil.SafeDivide(in.MonthlyRent*constants.MonthsPerYear-in.AnnualPropertyTax, in.PurchasePrice)
}

// PaybackYears is the number of years of cash flow needed to recover the
// initial investment; +Inf when the property produces no cash flow.
func PaybackYears(in Input) float64 {
	annual := AnnualCashFlow(in)
	if annual == 0 {
		return math.Inf(1)
	}
	return in.InitialInvestment / annual
}

// LeverageRatio is the loan amount over the purchase price.
func LeverageRatio(in Input) float64 {
	return mathutil.SafeDivide(in.LoanAmount, in.PurchasePrice)
}

// EvaluateRisk flags negative cash flow, ROI under 5% and leverage over 80%.
func EvaluateRisk(in Input) (Risk, error) {
	roi, err := ROI(in)
	if err != nil {
		return Risk{}, err
	}
	return Risk{
		NegativeCashFlow: MonthlyCashFlow(in) < 0,
		LowROI:           roi < constants.RentalLowROIThreshold,
		HighLeverage:     LeverageRatio(in) > constants.RentalHighLeverageThreshold,
	}, nil
}

// Analyze computes every rental indicator.
func Analyze(in Input) (Metrics, error) {
	roi, err := ROI(in)
	if err != nil {
		return Metrics{}, err
	}
	risk, err := EvaluateRisk(in)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		MonthlyCashFlow: MonthlyCashFlow(in),
		AnnualCashFlow:  AnnualCashFlow(in),
		ROI:             roi,
		CapRate:         CapRate(in),
		PaybackYears:    PaybackYears(in),
		LeverageRatio:   LeverageRatio(in),
		Risk:            risk,
	}, nil
}
