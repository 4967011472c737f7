package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "R$ 0,00"},
		{"Small amount", 9.5, "R$ 9,50"},
		{"Thousands", 1500, "R$ 1.500,00"},
		{"Millions", 1234567.891, "R$ 1.234.567,89"},
		{"Negative", -6929.518, "-R$ 6.929,52"},
		{"Rounds half away from zero", 0.125, "R$ 0,13"},
		{"Negative rounding to zero", -0.001, "R$ 0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{338400, "338.400,00"},
		{-1039.4277, "-1.039,43"},
		{999.999, "1.000,00"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.amount); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		ratio    float64
		expected string
	}{
		{0.0835473, "8,35%"},
		{0.1, "10,00%"},
		{-0.25, "-25,00%"},
		{0, "0,00%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.ratio); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.ratio, got, tt.expected)
		}
	}
}
