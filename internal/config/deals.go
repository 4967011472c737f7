package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/validation"
)

// DealConfig is the form-shaped description of a deal as found in config
// files and API requests. Percentages are on a 0-100 scale.
type DealConfig struct {
	Name               string                 `yaml:"name" json:"name"`
	PaymentType        string                 `yaml:"paymentType" json:"paymentType"`
	Acquisition        AcquisitionConfig      `yaml:"acquisition" json:"acquisition"`
	Installment        *InstallmentConfig     `yaml:"installment,omitempty" json:"installment,omitempty"`
	Financing          *FinancingConfig       `yaml:"financing,omitempty" json:"financing,omitempty"`
	Liabilities        LiabilitiesConfig      `yaml:"liabilities,omitempty" json:"liabilities,omitempty"`
	Renovation         CostConfig             `yaml:"renovation,omitempty" json:"renovation,omitempty"`
	Evacuation         CostConfig             `yaml:"evacuation,omitempty" json:"evacuation,omitempty"`
	OperationAndExit   OperationAndExitConfig `yaml:"operationAndExit" json:"operationAndExit"`
	ExpectedROIPercent *float64               `yaml:"expectedRoiPercent,omitempty" json:"expectedRoiPercent,omitempty"`
	Optimize           []OptimizerConfig      `yaml:"optimize,omitempty" json:"optimize,omitempty"`
}

// AcquisitionConfig holds the purchase terms.
type AcquisitionConfig struct {
	PurchasePrice        float64  `yaml:"purchasePrice" json:"purchasePrice"`
	DownPaymentPercent   float64  `yaml:"downPaymentPercent" json:"downPaymentPercent"`
	AuctioneerFeePercent *float64 `yaml:"auctioneerFeePercent,omitempty" json:"auctioneerFeePercent,omitempty"`
	AdvisoryFeePercent   *float64 `yaml:"advisoryFeePercent,omitempty" json:"advisoryFeePercent,omitempty"`
	ITBIPercent          float64  `yaml:"itbiPercent" json:"itbiPercent"`
	RegistryCost         float64  `yaml:"registryCost" json:"registryCost"`
}

// InstallmentConfig holds the seller installment plan.
type InstallmentConfig struct {
	Count int `yaml:"count" json:"count"`
}

// FinancingConfig holds the bank loan terms. Enabled defaults to true when the
// block is present.
type FinancingConfig struct {
	Enabled           *bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	AnnualRatePercent float64 `yaml:"annualRatePercent" json:"annualRatePercent"`
	TermMonths        int     `yaml:"termMonths" json:"termMonths"`
	System            string  `yaml:"system" json:"system"`
}

// LiabilitiesConfig holds debts inherited with the property.
type LiabilitiesConfig struct {
	IPTUDebt  float64 `yaml:"iptuDebt" json:"iptuDebt"`
	CondoDebt float64 `yaml:"condoDebt" json:"condoDebt"`
}

// CostConfig holds a one-time cost.
type CostConfig struct {
	Costs float64 `yaml:"costs" json:"costs"`
}

// OperationAndExitConfig holds the holding period and resale terms.
type OperationAndExitConfig struct {
	ResalePrice           float64 `yaml:"resalePrice" json:"resalePrice"`
	ResaleDiscountPercent float64 `yaml:"resaleDiscountPercent" json:"resaleDiscountPercent"`
	BrokerFeePercent      float64 `yaml:"brokerFeePercent" json:"brokerFeePercent"`
	MonthlyCondoFee       float64 `yaml:"monthlyCondoFee" json:"monthlyCondoFee"`
	MonthlyIPTU           float64 `yaml:"monthlyIptu" json:"monthlyIptu"`
	ExpectedSaleMonths    int     `yaml:"expectedSaleMonths" json:"expectedSaleMonths"`
}

// DisplayName returns the deal name or a positional fallback.
func (d DealConfig) DisplayName(index int) string {
	if d.Name != "" {
		return d.Name
	}
	return fmt.Sprintf("deal #%d", index+1)
}

// ToProjectInput validates the deal and converts it into the engine's input
// record. All field errors are reported together, wrapped in ErrInvalidDeal.
func (d DealConfig) ToProjectInput() (deal.ProjectInput, error) {
	acq := d.Acquisition
	op := d.OperationAndExit

	errs := validation.Collect(
		validation.Positive("acquisition.purchasePrice", acq.PurchasePrice),
		validation.Percent("acquisition.downPaymentPercent", acq.DownPaymentPercent),
		validation.OptionalPercent("acquisition.auctioneerFeePercent", acq.AuctioneerFeePercent),
		validation.OptionalPercent("acquisition.advisoryFeePercent", acq.AdvisoryFeePercent),
		validation.Percent("acquisition.itbiPercent", acq.ITBIPercent),
		validation.NonNegative("acquisition.registryCost", acq.RegistryCost),
		validation.NonNegative("liabilities.iptuDebt", d.Liabilities.IPTUDebt),
		validation.NonNegative("liabilities.condoDebt", d.Liabilities.CondoDebt),
		validation.NonNegative("renovation.costs", d.Renovation.Costs),
		validation.NonNegative("evacuation.costs", d.Evacuation.Costs),
		validation.Positive("operationAndExit.resalePrice", op.ResalePrice),
		validation.Percent("operationAndExit.resaleDiscountPercent", op.ResaleDiscountPercent),
		validation.Percent("operationAndExit.brokerFeePercent", op.BrokerFeePercent),
		validation.NonNegative("operationAndExit.monthlyCondoFee", op.MonthlyCondoFee),
		validation.NonNegative("operationAndExit.monthlyIptu", op.MonthlyIPTU),
		validation.PositiveMonths("operationAndExit.expectedSaleMonths", op.ExpectedSaleMonths),
	)
	if d.ExpectedROIPercent != nil {
		errs = append(errs, validation.Collect(validation.NonNegative("expectedRoiPercent", *d.ExpectedROIPercent))...)
	}

	payment, paymentErrs := d.payment()
	errs = append(errs, paymentErrs...)

	for i, directive := range d.Optimize {
		if err := directive.Validate(i, d.PaymentType); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return deal.ProjectInput{}, fmt.Errorf("%w %q: %w", ErrInvalidDeal, d.Name, errors.Join(errs...))
	}

	return deal.ProjectInput{
		Name: d.Name,
		Acquisition: deal.Acquisition{
			PurchasePrice:        acq.PurchasePrice,
			DownPaymentPercent:   acq.DownPaymentPercent,
			AuctioneerFeePercent: copyFloat(acq.AuctioneerFeePercent),
			AdvisoryFeePercent:   copyFloat(acq.AdvisoryFeePercent),
			ITBIPercent:          acq.ITBIPercent,
			RegistryCost:         acq.RegistryCost,
		},
		Payment: payment,
		Liabilities: deal.Liabilities{
			IPTUDebt:  d.Liabilities.IPTUDebt,
			CondoDebt: d.Liabilities.CondoDebt,
		},
		RenovationCosts: d.Renovation.Costs,
		EvacuationCosts: d.Evacuation.Costs,
		OperationAndExit: deal.OperationAndExit{
			ResalePrice:           op.ResalePrice,
			ResaleDiscountPercent: op.ResaleDiscountPercent,
			BrokerFeePercent:      op.BrokerFeePercent,
			MonthlyCondoFee:       op.MonthlyCondoFee,
			MonthlyIPTU:           op.MonthlyIPTU,
			ExpectedSaleMonths:    op.ExpectedSaleMonths,
		},
		ExpectedROIPercent: copyFloat(d.ExpectedROIPercent),
	}, nil
}

func (d DealConfig) payment() (deal.Payment, []error) {
	if d.PaymentType == "" {
		return deal.Cash{}, nil
	}
	paymentType, err := deal.ParsePaymentType(d.PaymentType)
	if err != nil {
		return nil, []error{&validation.FieldError{Field: "paymentType", Message: err.Error()}}
	}

	switch paymentType {
	case deal.PaymentInstallment:
		if d.Installment == nil {
			return nil, []error{&validation.FieldError{Field: "installment", Message: "is required when paymentType is installment"}}
		}
		if err := validation.PositiveMonths("installment.count", d.Installment.Count); err != nil {
			return nil, []error{err}
		}
		return deal.Installment{Count: d.Installment.Count}, nil

	case deal.PaymentFinancing:
		f := d.Financing
		if f == nil {
			return nil, []error{&validation.FieldError{Field: "financing", Message: "is required when paymentType is financing"}}
		}
		system, sysErr := deal.ParseAmortizationSystem(f.System)
		errs := validation.Collect(
			validation.NonNegative("financing.annualRatePercent", f.AnnualRatePercent),
			validation.PositiveMonths("financing.termMonths", f.TermMonths),
		)
		if sysErr != nil {
			errs = append(errs, &validation.FieldError{Field: "financing.system", Message: sysErr.Error()})
		}
		if len(errs) > 0 {
			return nil, errs
		}
		enabled := true
		if f.Enabled != nil {
			enabled = *f.Enabled
		}
		return deal.Financing{
			Enabled:           enabled,
			AnnualRatePercent: f.AnnualRatePercent,
			TermMonths:        f.TermMonths,
			System:            system,
		}, nil
	}

	return deal.Cash{}, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
