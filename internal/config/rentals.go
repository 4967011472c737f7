package config

import (
	"errors"
	"fmt"

	"github.com/iwvelando/deal-viability/internal/rental"
	"github.com/iwvelando/deal-viability/pkg/loans"
	"github.com/iwvelando/deal-viability/pkg/validation"
)

// RentalConfig describes a property held for rent. When LoanInstallment is
// omitted and loan terms are given, the installment is the PRICE payment of
// LoanAmount over those terms.
type RentalConfig struct {
	Name                  string  `yaml:"name" json:"name"`
	PurchasePrice         float64 `yaml:"purchasePrice" json:"purchasePrice"`
	InitialInvestment     float64 `yaml:"initialInvestment" json:"initialInvestment"`
	LoanAmount            float64 `yaml:"loanAmount,omitempty" json:"loanAmount,omitempty"`
	LoanAnnualRatePercent float64 `yaml:"loanAnnualRatePercent,omitempty" json:"loanAnnualRatePercent,omitempty"`
	LoanTermMonths        int     `yaml:"loanTermMonths,omitempty" json:"loanTermMonths,omitempty"`
	LoanInstallment       float64 `yaml:"loanInstallment,omitempty" json:"loanInstallment,omitempty"`
	MonthlyRent           float64 `yaml:"monthlyRent" json:"monthlyRent"`
	MonthlyExpenses       float64 `yaml:"monthlyExpenses,omitempty" json:"monthlyExpenses,omitempty"`
	AnnualPropertyTax     float64 `yaml:"annualPropertyTax,omitempty" json:"annualPropertyTax,omitempty"`
}

// ToRentalInput validates the rental case and converts it into the rental
// calculator's input.
func (r RentalConfig) ToRentalInput() (rental.Input, error) {
	errs := validation.Collect(
		validation.Positive("purchasePrice", r.PurchasePrice),
		validation.NonNegative("initialInvestment", r.InitialInvestment),
		validation.NonNegative("loanAmount", r.LoanAmount),
		validation.NonNegative("loanAnnualRatePercent", r.LoanAnnualRatePercent),
		validation.NonNegative("loanInstallment", r.LoanInstallment),
		validation.NonNegative("monthlyRent", r.MonthlyRent),
		validation.NonNegative("monthlyExpenses", r.MonthlyExpenses),
		validation.NonNegative("annualPropertyTax", r.AnnualPropertyTax),
	)
	if r.LoanTermMonths < 0 {
		errs = append(errs, &validation.FieldError{Field: "loanTermMonths", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return rental.Input{}, fmt.Errorf("%w %q: %w", ErrInvalidDeal, r.Name, errors.Join(errs...))
	}

	installment := r.LoanInstallment
	if installment == 0 && r.LoanAmount > 0 && r.LoanTermMonths > 0 {
		installment = loans.PricePayment(r.LoanAmount, loans.MonthlyRate(r.LoanAnnualRatePercent), r.LoanTermMonths)
	}

	return rental.Input{
		PurchasePrice:     r.PurchasePrice,
		InitialInvestment: r.InitialInvestment,
		LoanAmount:        r.LoanAmount,
		MonthlyRent:       r.MonthlyRent,
		MonthlyExpenses:   r.MonthlyExpenses,
		AnnualPropertyTax: r.AnnualPropertyTax,
		LoanInstallment:   installment,
	}, nil
}

// DisplayName returns the rental name or a positional fallback.
func (r RentalConfig) DisplayName(index int) string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("rental #%d", index+1)
}
