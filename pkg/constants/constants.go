// Package constants provides shared constants for the fleet-roi application.
package constants

// Financial constants
const (
	// LicenseCostPerVesselPerMonth is the flat application license fee in USD
	// charged per vessel per month.
	LicenseCostPerVesselPerMonth = 300.0

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// HorizonYears is the length of the extended ROI projection
	HorizonYears = 3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Environmental constants
const (
	// CO2TonsPerFuelTon converts metric tons of marine fuel burned into metric
	// tons of CO2 emitted (IMO-derived factor for the assumed fuel type).
	CO2TonsPerFuelTon = 3.114
)

// Input bounds
const (
	// MaxOperatingDays caps the annual operating days of a vessel
	MaxOperatingDays = 365
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
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for the
	// JSON API (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
