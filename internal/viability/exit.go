package viability

import (
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// ExitProceeds is the breakdown of the resale.
type ExitProceeds struct {
	SaleAfterDiscount float64
	BrokerFee         float64
	SaleNet           float64
	SaleNetAfterLoan  float64
}

// SaleProceeds nets the gross resale price down by the resale discount and the
// broker commission, then settles any balance still owed at the sale month.
func SaleProceeds(op deal.OperationAndExit, remainingBalance float64) ExitProceeds {
	afterDiscount := op.ResalePrice * (1 - mathutil.Fraction(op.ResaleDiscountPercent))
	brokerFee := mathutil.ApplyPercentage(afterDiscount, op.BrokerFeePercent)
	saleNet := afterDiscount - brokerFee

	afterLoan := saleNet
	if remainingBalance > 0 {
		afterLoan = mathutil.NonNegative(saleNet - remainingBalance)
	}

	return ExitProceeds{
		SaleAfterDiscount: afterDiscount,
		BrokerFee:         brokerFee,
		SaleNet:           saleNet,
		SaleNetAfterLoan:  afterLoan,
	}
}
