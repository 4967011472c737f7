package config

import (
	"fmt"

	"github.com/iwvelando/deal-viability/pkg/validation"
)

// Optimizer fields that can be searched.
const (
	OptimizerFieldResalePrice   = "resalePrice"
	OptimizerFieldPurchasePrice = "purchasePrice"
	OptimizerFieldAnnualRate    = "annualRatePercent"
)

// Optimizer goals.
const (
	OptimizerGoalExpectedROI = "expectedRoi"
	OptimizerGoalBreakEven   = "breakEven"
)

// OptimizerConfig asks for the threshold value of one deal field at which the
// goal is just met, e.g. the lowest resale price that still reaches the
// expected ROI. Min and Max bound the search; when unset they default to a
// range around the configured value.
type OptimizerConfig struct {
	Field         string   `yaml:"field" json:"field"`
	Goal          string   `yaml:"goal,omitempty" json:"goal,omitempty"`
	Min           *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Tolerance     float64  `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int      `yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// CanonicalGoal returns the goal, defaulting to the expected ROI.
func (o OptimizerConfig) CanonicalGoal() string {
	if o.Goal == "" {
		return OptimizerGoalExpectedROI
	}
	return o.Goal
}

// Validate checks the directive against the deal's payment type.
func (o OptimizerConfig) Validate(index int, paymentType string) error {
	prefix := fmt.Sprintf("optimize[%d]", index)

	switch o.Field {
	case OptimizerFieldResalePrice, OptimizerFieldPurchasePrice:
	case OptimizerFieldAnnualRate:
		if paymentType != "financing" {
			return &validation.FieldError{Field: prefix + ".field", Message: "annualRatePercent requires a financed deal"}
		}
	default:
		return &validation.FieldError{Field: prefix + ".field", Message: fmt.Sprintf("unknown optimizer field %q", o.Field)}
	}

	switch o.CanonicalGoal() {
	case OptimizerGoalExpectedROI, OptimizerGoalBreakEven:
	default:
		return &validation.FieldError{Field: prefix + ".goal", Message: fmt.Sprintf("unknown optimizer goal %q", o.Goal)}
	}

	if o.Min != nil && o.Max != nil && *o.Min >= *o.Max {
		return &validation.FieldError{Field: prefix, Message: "min must be lower than max"}
	}
	if o.Tolerance < 0 {
		return &validation.FieldError{Field: prefix + ".tolerance", Message: "must not be negative"}
	}
	if o.MaxIterations < 0 {
		return &validation.FieldError{Field: prefix + ".maxIterations", Message: "must not be negative"}
	}
	return nil
}
