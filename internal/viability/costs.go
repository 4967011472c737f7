package viability

import (
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// Costs is the breakdown produced by the cost aggregator.
type Costs struct {
	DownPayment      float64
	TransferTax      float64
	RegistryCost     float64
	AuctioneerFee    float64
	AdvisoryFee      float64
	InheritedDebts   float64
	Renovation       float64
	Evacuation       float64
	AcquisitionTotal float64
	Operating        float64
}

// DownPayment is the full price for cash deals and the configured percentage
// of the price otherwise.
func DownPayment(input deal.ProjectInput) float64 {
	price := input.Acquisition.PurchasePrice
	if input.PaymentType() == deal.PaymentCash {
		return price
	}
	return mathutil.ApplyPercentage(price, input.Acquisition.DownPaymentPercent)
}

// AggregateCosts sums the one-time acquisition costs: transfer tax, registry, optional
// auctioneer and advisory fees, inherited debts, renovation and eviction. It
// also resolves the down payment and the recurring operating costs.
func AggregateCosts(input deal.ProjectInput) Costs {
	acq := input.Acquisition
	c := Costs{
		DownPayment:    DownPayment(input),
		TransferTax:    mathutil.ApplyPercentage(acq.PurchasePrice, acq.ITBIPercent),
		RegistryCost:   acq.RegistryCost,
		AuctioneerFee:  mathutil.ApplyPercentage(acq.PurchasePrice, deal.ValueOrZero(acq.AuctioneerFeePercent)),
		AdvisoryFee:    mathutil.ApplyPercentage(acq.PurchasePrice, deal.ValueOrZero(acq.AdvisoryFeePercent)),
		InheritedDebts: input.Liabilities.IPTUDebt + input.Liabilities.CondoDebt,
		Renovation:     input.RenovationCosts,
		Evacuation:     input.EvacuationCosts,
		Operating:      OperatingCosts(input.OperationAndExit),
	}
	c.AcquisitionTotal = c.TransferTax + c.RegistryCost + c.AuctioneerFee + c.AdvisoryFee +
		c.InheritedDebts + c.Renovation + c.Evacuation
	return c
}

// OperatingCosts are the recurring holding costs until the sale.
func OperatingCosts(op deal.OperationAndExit) float64 {
	return (op.MonthlyCondoFee + op.MonthlyIPTU) * float64(op.ExpectedSaleMonths)
}
