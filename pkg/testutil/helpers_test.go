package testutil

import (
	"testing"

	"github.com/iwvelando/deal-viability/internal/viability"
)

func TestFindResult(t *testing.T) {
	results := []viability.Result{
		{Name: "Deal A", Profit: 1000},
		{Name: "Deal B", Profit: 2000},
		{Name: "Another Deal", Profit: 3000},
	}

	tests := []struct {
		name           string
		searchName     string
		expectFound    bool
		expectedProfit float64
	}{
		{name: "Find existing deal A", searchName: "Deal A", expectFound: true, expectedProfit: 1000},
		{name: "Find last deal", searchName: "Another Deal", expectFound: true, expectedProfit: 3000},
		{name: "Case sensitive lookup", searchName: "deal a", expectFound: false},
		{name: "Empty name", searchName: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindResult(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("Expected no result for %q, got %+v", tt.searchName, result)
				}
				return
			}
			if result == nil {
				t.Fatalf("Expected to find %q", tt.searchName)
			}
			if result.Profit != tt.expectedProfit {
				t.Errorf("Expected profit %v, got %v", tt.expectedProfit, result.Profit)
			}
		})
	}

	if FindResult(nil, "Deal A") != nil {
		t.Error("Expected nil for an empty slice")
	}
}

func TestFindResultReturnsSliceElement(t *testing.T) {
	results := []viability.Result{{Name: "Deal A"}}
	FindResult(results, "Deal A").Profit = 42
	if results[0].Profit != 42 {
		t.Error("Expected FindResult to point into the slice")
	}
}

func TestWithinCents(t *testing.T) {
	if !WithinCents(100.004, 100.0) {
		t.Error("Expected sub-cent difference to match")
	}
	if !WithinCents(99.995, 100.0) {
		t.Error("Expected half cent difference to match")
	}
	if WithinCents(99.97, 100.0) {
		t.Error("Expected three cent difference to fail")
	}
}
