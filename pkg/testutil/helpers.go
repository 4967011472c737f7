// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/mathutil"
)

// FindResult finds a deal result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []viability.Result, name string) *viability.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// WithinCents reports whether two amounts differ by at most one cent.
func WithinCents(a, b float64) bool {
	return mathutil.WithinTolerance(a, b, constants.CurrencyTolerance)
}
