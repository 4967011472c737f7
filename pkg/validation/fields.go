package validation

import (
	"fmt"
)

// FieldError describes an invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Positive requires a strictly positive amount.
func Positive(field string, value float64) error {
	if value <= 0 {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be greater than zero, got %.2f", value)}
	}
	return nil
}

// NonNegative requires an amount of zero or more.
func NonNegative(field string, value float64) error {
	if value < 0 {
		return &FieldError{Field: field, Message: fmt.Sprintf("must not be negative, got %.2f", value)}
	}
	return nil
}

// Percent requires a percentage on the 0-100 scale.
func Percent(field string, value float64) error {
	if value < 0 || value > 100 {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be between 0 and 100, got %.2f", value)}
	}
	return nil
}

// OptionalPercent validates a percentage only when it is present.
func OptionalPercent(field string, value *float64) error {
	if value == nil {
		return nil
	}
	return Percent(field, *value)
}

// PositiveMonths requires a whole number of months greater than zero.
func PositiveMonths(field string, months int) error {
	if months <= 0 {
		return &FieldError{Field: field, Message: fmt.Sprintf("must be a positive number of months, got %d", months)}
	}
	return nil
}

// Collect drops nil errors so callers can validate many fields in one pass.
func Collect(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// ValidateSaleTiming warns when the expected sale happens after the loan or
// installment plan is fully paid, in which case no balance is settled at sale.
func ValidateSaleTiming(dealName string, saleMonths, termMonths int) string {
	if termMonths > 0 && saleMonths > termMonths {
		return fmt.Sprintf("Deal '%s' sells after the payment term ends (%d > %d months) - balance will be fully paid before sale",
			dealName, saleMonths, termMonths)
	}
	return ""
}
