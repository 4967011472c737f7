// Package constants provides shared constants for the deal-viability application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions; every percentage
	// input is expressed on a 0-100 scale.
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Viability engine constants
const (
	// IncomeTaxRate is the flat capital-gains rate applied to positive profit.
	// A simple estimate that does not account for exemptions.
	IncomeTaxRate = 0.15

	// DefaultExpectedROIPercent is the investor's minimum acceptable return
	// when a deal does not declare one.
	DefaultExpectedROIPercent = 10.0

	// ClassificationToleranceBand is the width, in percentage points, of the
	// "Margem apertada" band below the expected ROI.
	ClassificationToleranceBand = 3.0

	// HighLeverageDownPaymentPercent is the down-payment percentage below which
	// a financed deal is flagged as highly leveraged.
	HighLeverageDownPaymentPercent = 30.0
)

// Rental metrics thresholds
const (
	// RentalLowROIThreshold flags rental cases returning less than 5% a year.
	RentalLowROIThreshold = 0.05

	// RentalHighLeverageThreshold flags loan-to-price ratios above 80%.
	RentalHighLeverageThreshold = 0.80
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "deals.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultBatchConcurrency bounds how many deals a batch request evaluates at once
	DefaultBatchConcurrency = 8

	// RedisAddressEnv names the environment variable holding the Redis address
	RedisAddressEnv = "DEAL_VIABILITY_REDIS_ADDR"
)
