package mathutil

import (
	"math"
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		a, b, tolerance float64
		want            bool
	}{
		{a: 100, b: 100.01, tolerance: 0.01, want: true},
		{a: 100, b: 100.02, tolerance: 0.01, want: false},
		{a: -5, b: 5, tolerance: 10, want: true},
		{a: 224487.86, b: 224487.8612, tolerance: 0.01, want: true},
	}
	for _, tt := range tests {
		if got := WithinTolerance(tt.a, tt.b, tt.tolerance); got != tt.want {
			t.Errorf("WithinTolerance(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.tolerance, got, tt.want)
		}
	}
}

func TestNonNegative(t *testing.T) {
	if got := NonNegative(-0.01); got != 0 {
		t.Errorf("NonNegative(-0.01) = %v, want 0", got)
	}
	if got := NonNegative(225000); got != 225000 {
		t.Errorf("NonNegative(225000) = %v, want 225000", got)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name         string
		n, low, high int
		want         int
	}{
		{name: "inside", n: 12, low: 0, high: 120, want: 12},
		{name: "above term", n: 130, low: 0, high: 120, want: 120},
		{name: "negative", n: -1, low: 0, high: 120, want: 0},
		{name: "empty interval", n: 5, low: 0, high: -1, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampInt(tt.n, tt.low, tt.high); got != tt.want {
				t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.n, tt.low, tt.high, got, tt.want)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		value, percentage, want float64
	}{
		{value: 300000, percentage: 3, want: 9000},
		{value: 360000, percentage: 6, want: 21600},
		{value: 125000, percentage: 0, want: 0},
		{value: 150000, percentage: 100, want: 150000},
	}
	for _, tt := range tests {
		if got := ApplyPercentage(tt.value, tt.percentage); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ApplyPercentage(%v, %v) = %v, want %v", tt.value, tt.percentage, got, tt.want)
		}
	}
}

func TestFraction(t *testing.T) {
	if got := Fraction(15); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("Fraction(15) = %v, want 0.15", got)
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(5890.09, 0); got != 0 {
		t.Errorf("SafeDivide by zero = %v, want 0", got)
	}
	if got := SafeDivide(1, 4); got != 0.25 {
		t.Errorf("SafeDivide(1, 4) = %v, want 0.25", got)
	}
}
