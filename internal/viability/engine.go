// Package viability computes whether a buy-renovate-sell deal is profitable:
// after-tax profit, return on the invested capital, risk flags and a
// three-way classification. Evaluation is pure and safe for concurrent use.
package viability

import (
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/loans"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine evaluates deals. It holds no state besides its logger.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Evaluate runs a deal through a silent engine.
func Evaluate(input deal.ProjectInput) Result {
	return NewEngine(nil).Evaluate(input)
}

// Evaluate computes the viability of a deal. Identical inputs always produce
// identical results; every division is guarded so the evaluation never fails.
func (e *Engine) Evaluate(input deal.ProjectInput) Result {
	costs := AggregateCosts(input)
	initialInvestment := costs.DownPayment + costs.AcquisitionTotal
	remainingAmount := mathutil.NonNegative(input.Acquisition.PurchasePrice - costs.DownPayment)
	saleMonths := input.OperationAndExit.ExpectedSaleMonths

	var (
		financing       *FinancingDetail
		installment     *InstallmentDetail
		balanceAtSale   float64
		totalPaid       float64
		financedEnabled bool
	)

	switch p := input.Payment.(type) {
	case deal.Installment:
		progress := loans.InstallmentProgress(remainingAmount, p.Count, saleMonths)
		installment = &InstallmentDetail{
			Count:                  p.Count,
			MonthsPaidUntilSale:    progress.MonthsElapsed,
			InstallmentAmount:      remainingAmount,
			MonthlyInstallment:     loans.InstallmentAmount(remainingAmount, p.Count),
			PrincipalPaidUntilSale: progress.PrincipalPaid,
			InterestPaidUntilSale:  0,
			TotalPaidUntilSale:     progress.TotalPaid,
			RemainingBalanceAtSale: progress.RemainingBalance,
		}
		balanceAtSale = progress.RemainingBalance
		totalPaid = progress.TotalPaid

	case deal.Financing:
		financedEnabled = p.Enabled
		rate := loans.MonthlyRate(p.AnnualRatePercent)
		financing = &FinancingDetail{
			System:            p.System,
			AnnualRatePercent: p.AnnualRatePercent,
			MonthlyRate:       rate,
			TermMonths:        p.TermMonths,
			FinancedAmount:    remainingAmount,
		}

		var progress loans.Progress
		if p.System == deal.SystemSAC {
			progress = loans.SACProgress(remainingAmount, rate, p.TermMonths, saleMonths)
			financing.MonthlyAmortization = loans.SACAmortization(remainingAmount, p.TermMonths)
			financing.FirstInstallment = loans.SACFirstInstallment(remainingAmount, rate, p.TermMonths)
		} else {
			progress = loans.PriceProgress(remainingAmount, rate, p.TermMonths, saleMonths)
			financing.MonthlyPayment = loans.PricePayment(remainingAmount, rate, p.TermMonths)
		}

		financing.MonthsPaidUntilSale = progress.MonthsElapsed
		financing.PrincipalPaidUntilSale = progress.PrincipalPaid
		financing.InterestPaidUntilSale = progress.InterestPaid
		financing.TotalPaidUntilSale = progress.TotalPaid
		financing.RemainingBalanceAtSale = progress.RemainingBalance
		balanceAtSale = progress.RemainingBalance
		totalPaid = progress.TotalPaid
	}

	exit := SaleProceeds(input.OperationAndExit, balanceAtSale)

	totalOutflow := initialInvestment + costs.Operating + totalPaid
	profit := exit.SaleNetAfterLoan - totalOutflow
	incomeTax := 0.0
	if profit > 0 {
		incomeTax = profit * constants.IncomeTaxRate
	}
	profitAfterTax := profit - incomeTax
	roi := mathutil.SafeDivide(profitAfterTax, initialInvestment)

	expected := ExpectedROIPercent(input)
	status, detail := Classify(profit, roi, expected)

	result := Result{
		Name:                           input.Name,
		PaymentType:                    input.PaymentType(),
		DownPayment:                    costs.DownPayment,
		InitialInvestment:              initialInvestment,
		AcquisitionCosts:               costs.AcquisitionTotal,
		RenovationCosts:                costs.Renovation,
		EvacuationCosts:                costs.Evacuation,
		OperatingCosts:                 costs.Operating,
		RemainingAmount:                remainingAmount,
		SaleNet:                        exit.SaleNet,
		SaleNetAfterLoan:               exit.SaleNetAfterLoan,
		TotalPaidUntilSale:             totalPaid,
		TotalOutflow:                   totalOutflow,
		Profit:                         profit,
		IncomeTax:                      incomeTax,
		IncomeTaxRate:                  constants.IncomeTaxRate,
		ProfitAfterTax:                 profitAfterTax,
		ROIOnInitialInvestmentAfterTax: roi,
		ExpectedROIPercent:             expected,
		Financing:                      financing,
		Installment:                    installment,
		Risk: Risk{
			NegativeProfit: profit < 0,
			LowROI:         roi < expected/constants.PercentageMultiplier,
			HighLeverage:   financedEnabled && input.Acquisition.DownPaymentPercent < constants.HighLeverageDownPaymentPercent,
		},
		ViabilityStatus: status,
		ViabilityDetail: detail,
	}

	e.logger.Debug("evaluated deal",
		zap.String("op", "viability.Evaluate"),
		zap.String("deal", input.Name),
		zap.String("paymentType", string(result.PaymentType)),
		zap.Float64("profit", profit),
		zap.Float64("roi", roi),
		zap.String("status", string(status)),
	)

	return result
}

// ExpectedROIPercent returns the deal's minimum acceptable return, defaulting
// to DefaultExpectedROIPercent.
func ExpectedROIPercent(input deal.ProjectInput) float64 {
	if input.ExpectedROIPercent == nil {
		return constants.DefaultExpectedROIPercent
	}
	return *input.ExpectedROIPercent
}
