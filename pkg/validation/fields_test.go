package validation

import (
	"errors"
	"testing"
)

func TestFieldValidators(t *testing.T) {
	ten := 10.0
	over := 101.0

	tests := []struct {
		name      string
		err       error
		expectErr bool
	}{
		{"Positive ok", Positive("price", 1), false},
		{"Positive zero", Positive("price", 0), true},
		{"Positive negative", Positive("price", -5), true},
		{"NonNegative zero", NonNegative("registry", 0), false},
		{"NonNegative negative", NonNegative("registry", -0.01), true},
		{"Percent lower bound", Percent("itbi", 0), false},
		{"Percent upper bound", Percent("itbi", 100), false},
		{"Percent above range", Percent("itbi", 100.5), true},
		{"Percent below range", Percent("itbi", -1), true},
		{"OptionalPercent missing", OptionalPercent("auctioneer", nil), false},
		{"OptionalPercent valid", OptionalPercent("auctioneer", &ten), false},
		{"OptionalPercent invalid", OptionalPercent("auctioneer", &over), true},
		{"PositiveMonths ok", PositiveMonths("term", 12), false},
		{"PositiveMonths zero", PositiveMonths("term", 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectErr && tt.err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectErr && tt.err != nil {
				t.Errorf("unexpected error = %v", tt.err)
			}
		})
	}
}

func TestFieldErrorMessage(t *testing.T) {
	err := Percent("acquisition.itbiPercent", 150)

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fieldErr.Field != "acquisition.itbiPercent" {
		t.Errorf("Field = %q, expected acquisition.itbiPercent", fieldErr.Field)
	}
	expected := "acquisition.itbiPercent must be between 0 and 100, got 150.00"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}

func TestCollect(t *testing.T) {
	errs := Collect(nil, Positive("a", 0), nil, Percent("b", 200))
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if Collect(nil, nil) != nil {
		t.Errorf("expected nil when every error is nil")
	}
}

func TestValidateSaleTiming(t *testing.T) {
	tests := []struct {
		name       string
		saleMonths int
		termMonths int
		expectWarn bool
	}{
		{"Sale before the end of the term", 12, 120, false},
		{"Sale exactly at the end of the term", 120, 120, false},
		{"Sale after the end of the term", 130, 120, true},
		{"Cash deal without term", 12, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateSaleTiming("Test Deal", tt.saleMonths, tt.termMonths)
			if tt.expectWarn && warning == "" {
				t.Errorf("expected warning but got none")
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("unexpected warning: %s", warning)
			}
		})
	}
}
