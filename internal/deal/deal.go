// Package deal defines the validated input record of a buy-renovate-sell real
// estate deal. Values are constructed by the configuration layer and are
// never mutated by the viability engine.
package deal

import "fmt"

// PaymentType names how the part of the purchase price not covered by the
// down payment is settled.
type PaymentType string

const (
	PaymentCash        PaymentType = "cash"
	PaymentInstallment PaymentType = "installment"
	PaymentFinancing   PaymentType = "financing"
)

// ParsePaymentType validates a payment type string.
func ParsePaymentType(value string) (PaymentType, error) {
	switch PaymentType(value) {
	case PaymentCash, PaymentInstallment, PaymentFinancing:
		return PaymentType(value), nil
	}
	return "", fmt.Errorf("unknown payment type %q, expected one of %s, %s or %s",
		value, PaymentCash, PaymentInstallment, PaymentFinancing)
}

// AmortizationSystem selects the bank financing amortization regime.
type AmortizationSystem string

const (
	// SystemPRICE is the constant-payment (French) system.
	SystemPRICE AmortizationSystem = "PRICE"
	// SystemSAC is the constant-amortization system.
	SystemSAC AmortizationSystem = "SAC"
)

// ParseAmortizationSystem validates an amortization system string.
func ParseAmortizationSystem(value string) (AmortizationSystem, error) {
	switch AmortizationSystem(value) {
	case SystemPRICE, SystemSAC:
		return AmortizationSystem(value), nil
	}
	return "", fmt.Errorf("unknown amortization system %q, expected %s or %s", value, SystemPRICE, SystemSAC)
}

// Payment is the sealed sum of the supported payment modes: Cash,
// Installment and Financing.
type Payment interface {
	Type() PaymentType
	sealed()
}

// Cash means the full purchase price is paid upfront.
type Cash struct{}

// Installment is an interest-free seller-financed plan.
type Installment struct {
	Count int
}

// Financing is an interest-bearing bank loan.
type Financing struct {
	Enabled           bool
	AnnualRatePercent float64
	TermMonths        int
	System            AmortizationSystem
}

func (Cash) Type() PaymentType        { return PaymentCash }
func (Installment) Type() PaymentType { return PaymentInstallment }
func (Financing) Type() PaymentType   { return PaymentFinancing }

func (Cash) sealed()        {}
func (Installment) sealed() {}
func (Financing) sealed()   {}

// Acquisition holds the purchase terms. Percentages are on a 0-100 scale.
type Acquisition struct {
	PurchasePrice        float64
	DownPaymentPercent   float64
	AuctioneerFeePercent *float64
	AdvisoryFeePercent   *float64
	ITBIPercent          float64
	RegistryCost         float64
}

// Liabilities are debts inherited with the property.
type Liabilities struct {
	IPTUDebt  float64
	CondoDebt float64
}

// OperationAndExit describes the holding period and the resale.
type OperationAndExit struct {
	ResalePrice           float64
	ResaleDiscountPercent float64
	BrokerFeePercent      float64
	MonthlyCondoFee       float64
	MonthlyIPTU           float64
	ExpectedSaleMonths    int
}

// ProjectInput is the complete, validated description of a deal.
type ProjectInput struct {
	Name               string
	Acquisition        Acquisition
	Payment            Payment
	Liabilities        Liabilities
	RenovationCosts    float64
	EvacuationCosts    float64
	OperationAndExit   OperationAndExit
	ExpectedROIPercent *float64
}

// PaymentType returns the type of the deal's payment mode, defaulting to cash
// when none was set.
func (p ProjectInput) PaymentType() PaymentType {
	if p.Payment == nil {
		return PaymentCash
	}
	return p.Payment.Type()
}

// Financing returns the financing terms when the deal is financed.
func (p ProjectInput) Financing() (Financing, bool) {
	f, ok := p.Payment.(Financing)
	return f, ok
}

// Installment returns the installment plan when the deal is paid in installments.
func (p ProjectInput) Installment() (Installment, bool) {
	i, ok := p.Payment.(Installment)
	return i, ok
}

// ValueOrZero collapses an optional amount to zero.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 {
	return &v
}
