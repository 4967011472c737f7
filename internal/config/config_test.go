package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/pkg/validation"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test data config",
			configPath: "testdata/deals.yaml",
			wantError:  false,
		},
		{
			name:       "Example config",
			configPath: "../../deals.yaml.example",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("testdata/deals.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected logging level debug, got %q", config.Logging.Level)
	}
	if config.Output.Format != "csv" {
		t.Errorf("Expected output format csv, got %q", config.Output.Format)
	}
	if len(config.Deals) != 2 {
		t.Fatalf("Expected 2 deals, got %d", len(config.Deals))
	}
	if len(config.Rentals) != 1 {
		t.Fatalf("Expected 1 rental, got %d", len(config.Rentals))
	}

	financed := config.Deals[0]
	if financed.PaymentType != "financing" {
		t.Errorf("Expected payment type financing, got %q", financed.PaymentType)
	}
	if financed.Financing == nil {
		t.Fatalf("Expected financing block to be decoded")
	}
	if financed.Financing.TermMonths != 120 || financed.Financing.System != "SAC" {
		t.Errorf("Unexpected financing terms: %+v", *financed.Financing)
	}
	if financed.Financing.Enabled != nil {
		t.Errorf("Expected enabled to be unset, got %v", *financed.Financing.Enabled)
	}
	if financed.ExpectedROIPercent == nil || *financed.ExpectedROIPercent != 8 {
		t.Errorf("Expected expectedRoiPercent 8, got %v", financed.ExpectedROIPercent)
	}
	if financed.OperationAndExit.MonthlyIPTU != 100 {
		t.Errorf("Expected monthly IPTU 100, got %v", financed.OperationAndExit.MonthlyIPTU)
	}

	installments := config.Deals[1]
	if installments.Installment == nil || installments.Installment.Count != 10 {
		t.Errorf("Expected installment count 10, got %+v", installments.Installment)
	}
	if installments.Acquisition.AuctioneerFeePercent == nil || *installments.Acquisition.AuctioneerFeePercent != 5 {
		t.Errorf("Expected auctioneer fee 5, got %v", installments.Acquisition.AuctioneerFeePercent)
	}
	if installments.Acquisition.AdvisoryFeePercent != nil {
		t.Errorf("Expected advisory fee to be unset")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	yaml := `
deals:
  - name: reader deal
    paymentType: cash
    acquisition:
      purchasePrice: 100000
      downPaymentPercent: 100
    operationAndExit:
      resalePrice: 130000
      expectedSaleMonths: 6
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if len(config.Deals) != 1 || config.Deals[0].Name != "reader deal" {
		t.Fatalf("Unexpected deals: %+v", config.Deals)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("deals: [unterminated")); err == nil {
		t.Errorf("Expected malformed YAML to fail")
	}
}

func TestValidateConfiguration(t *testing.T) {
	disabled := false

	tests := []struct {
		name         string
		config       Configuration
		wantWarnings int
		contains     string
	}{
		{
			name:         "Empty configuration",
			config:       Configuration{},
			wantWarnings: 1,
			contains:     "no deals",
		},
		{
			name: "Duplicate names",
			config: Configuration{Deals: []DealConfig{
				{Name: "a", PaymentType: "cash"},
				{Name: "a", PaymentType: "cash"},
			}},
			wantWarnings: 1,
			contains:     "more than once",
		},
		{
			name: "Disabled financing",
			config: Configuration{Deals: []DealConfig{{
				Name:             "d",
				PaymentType:      "financing",
				Financing:        &FinancingConfig{Enabled: &disabled, TermMonths: 120},
				OperationAndExit: OperationAndExitConfig{ExpectedSaleMonths: 12},
			}}},
			wantWarnings: 1,
			contains:     "disabled",
		},
		{
			name: "Sale after installments end",
			config: Configuration{Deals: []DealConfig{{
				Name:             "d",
				PaymentType:      "installment",
				Installment:      &InstallmentConfig{Count: 6},
				OperationAndExit: OperationAndExitConfig{ExpectedSaleMonths: 12},
			}}},
			wantWarnings: 1,
			contains:     "after the payment term",
		},
		{
			name: "Cash with leftover financing",
			config: Configuration{Deals: []DealConfig{{
				Name:        "d",
				PaymentType: "cash",
				Financing:   &FinancingConfig{TermMonths: 120},
			}}},
			wantWarnings: 1,
			contains:     "ignored",
		},
		{
			name: "Clean configuration",
			config: Configuration{Deals: []DealConfig{{
				Name:             "d",
				PaymentType:      "financing",
				Financing:        &FinancingConfig{TermMonths: 120},
				OperationAndExit: OperationAndExitConfig{ExpectedSaleMonths: 12},
			}}},
			wantWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if len(warnings) != tt.wantWarnings {
				t.Fatalf("Expected %d warnings, got %d: %v", tt.wantWarnings, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(warnings[0], tt.contains) {
				t.Errorf("Expected warning to contain %q, got %q", tt.contains, warnings[0])
			}
		})
	}
}

func validDeal() DealConfig {
	return DealConfig{
		Name:        "valid",
		PaymentType: "financing",
		Acquisition: AcquisitionConfig{
			PurchasePrice:      300000,
			DownPaymentPercent: 20,
			ITBIPercent:        3,
			RegistryCost:       1000,
		},
		Financing: &FinancingConfig{
			AnnualRatePercent: 12,
			TermMonths:        120,
			System:            "PRICE",
		},
		OperationAndExit: OperationAndExitConfig{
			ResalePrice:        360000,
			BrokerFeePercent:   6,
			ExpectedSaleMonths: 12,
		},
	}
}

func TestToProjectInput(t *testing.T) {
	input, err := validDeal().ToProjectInput()
	if err != nil {
		t.Fatalf("ToProjectInput() error = %v", err)
	}

	financing, ok := input.Financing()
	if !ok {
		t.Fatalf("Expected a financing payment, got %T", input.Payment)
	}
	if !financing.Enabled {
		t.Errorf("Expected financing to default to enabled")
	}
	if financing.System != deal.SystemPRICE || financing.TermMonths != 120 {
		t.Errorf("Unexpected financing: %+v", financing)
	}
	if input.Acquisition.PurchasePrice != 300000 || input.OperationAndExit.ExpectedSaleMonths != 12 {
		t.Errorf("Fields were not carried over: %+v", input)
	}
}

func TestToProjectInputPaymentTypes(t *testing.T) {
	cash := validDeal()
	cash.PaymentType = "cash"
	input, err := cash.ToProjectInput()
	if err != nil {
		t.Fatalf("cash: unexpected error %v", err)
	}
	if input.PaymentType() != deal.PaymentCash {
		t.Errorf("Expected cash, got %s", input.PaymentType())
	}

	unset := validDeal()
	unset.PaymentType = ""
	input, err = unset.ToProjectInput()
	if err != nil {
		t.Fatalf("unset: unexpected error %v", err)
	}
	if input.PaymentType() != deal.PaymentCash {
		t.Errorf("Expected an unset payment type to mean cash, got %s", input.PaymentType())
	}

	installment := validDeal()
	installment.PaymentType = "installment"
	installment.Installment = &InstallmentConfig{Count: 10}
	input, err = installment.ToProjectInput()
	if err != nil {
		t.Fatalf("installment: unexpected error %v", err)
	}
	plan, ok := input.Installment()
	if !ok || plan.Count != 10 {
		t.Errorf("Expected 10 installments, got %+v", input.Payment)
	}

	disabled := false
	off := validDeal()
	off.Financing.Enabled = &disabled
	input, err = off.ToProjectInput()
	if err != nil {
		t.Fatalf("disabled: unexpected error %v", err)
	}
	if financing, _ := input.Financing(); financing.Enabled {
		t.Errorf("Expected financing to be disabled")
	}
}

func TestToProjectInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DealConfig)
		field  string
	}{
		{"Zero price", func(d *DealConfig) { d.Acquisition.PurchasePrice = 0 }, "acquisition.purchasePrice"},
		{"Down payment above 100", func(d *DealConfig) { d.Acquisition.DownPaymentPercent = 120 }, "acquisition.downPaymentPercent"},
		{"Negative optional fee", func(d *DealConfig) { d.Acquisition.AdvisoryFeePercent = deal.Float(-1) }, "acquisition.advisoryFeePercent"},
		{"Zero sale months", func(d *DealConfig) { d.OperationAndExit.ExpectedSaleMonths = 0 }, "operationAndExit.expectedSaleMonths"},
		{"Unknown payment type", func(d *DealConfig) { d.PaymentType = "barter" }, "paymentType"},
		{"Missing financing", func(d *DealConfig) { d.Financing = nil }, "financing"},
		{"Unknown system", func(d *DealConfig) { d.Financing.System = "GERMAN" }, "financing.system"},
		{"Zero term", func(d *DealConfig) { d.Financing.TermMonths = 0 }, "financing.termMonths"},
		{"Missing installment", func(d *DealConfig) { d.PaymentType = "installment" }, "installment"},
		{"Negative expected ROI", func(d *DealConfig) { d.ExpectedROIPercent = deal.Float(-5) }, "expectedRoiPercent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDeal()
			tt.modify(&d)
			_, err := d.ToProjectInput()
			if !errors.Is(err, ErrInvalidDeal) {
				t.Fatalf("Expected ErrInvalidDeal, got %v", err)
			}
			var fieldErr *validation.FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("Expected a FieldError in %v", err)
			}
			if fieldErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, fieldErr.Field)
			}
		})
	}
}

func TestToProjectInputReportsAllErrors(t *testing.T) {
	d := validDeal()
	d.Acquisition.PurchasePrice = -1
	d.OperationAndExit.ResalePrice = 0
	d.Financing.TermMonths = 0

	_, err := d.ToProjectInput()
	if err == nil {
		t.Fatal("Expected an error")
	}
	for _, field := range []string{"acquisition.purchasePrice", "operationAndExit.resalePrice", "financing.termMonths"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to mention %s, got %v", field, err)
		}
	}
}

func TestRentalToRentalInput(t *testing.T) {
	config, err := LoadConfiguration("testdata/deals.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	input, err := config.Rentals[0].ToRentalInput()
	if err != nil {
		t.Fatalf("ToRentalInput() error = %v", err)
	}
	if input.LoanInstallment != 2500 || input.MonthlyRent != 4000 {
		t.Errorf("Unexpected rental input: %+v", input)
	}

	derived := RentalConfig{
		PurchasePrice:         175000,
		InitialInvestment:     35000,
		LoanAmount:            175000,
		LoanAnnualRatePercent: 4.5,
		LoanTermMonths:        360,
		MonthlyRent:           1500,
	}
	input, err = derived.ToRentalInput()
	if err != nil {
		t.Fatalf("ToRentalInput() error = %v", err)
	}
	if input.LoanInstallment < 886.69 || input.LoanInstallment > 886.71 {
		t.Errorf("Expected derived installment near 886.70, got %v", input.LoanInstallment)
	}

	bad := RentalConfig{Name: "bad", PurchasePrice: 0, MonthlyRent: -1}
	if _, err := bad.ToRentalInput(); !errors.Is(err, ErrInvalidDeal) {
		t.Errorf("Expected ErrInvalidDeal, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (DealConfig{}).DisplayName(2); got != "deal #3" {
		t.Errorf("Expected positional fallback, got %q", got)
	}
	if got := (DealConfig{Name: "x"}).DisplayName(2); got != "x" {
		t.Errorf("Expected name, got %q", got)
	}
	if got := (RentalConfig{}).DisplayName(0); got != "rental #1" {
		t.Errorf("Expected positional fallback, got %q", got)
	}
}
