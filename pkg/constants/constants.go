// Package constants provides shared constants for the boiler-optimizer application.
package constants

// Boiler model constants
const (
	// HigherHeatingValue is the fuel heating value in MJ/kg (natural gas)
	HigherHeatingValue = 40.0

	// WaterSpecificHeat is the specific heat of water in kJ/kg·°C
	WaterSpecificHeat = 4.18

	// LatentHeatVaporization is the latent heat of water at 100°C in kJ/kg
	LatentHeatVaporization = 2257.0

	// BoilingPointC is the saturation temperature at 1 bar
	BoilingPointC = 100.0

	// SteamTempPerBar is the saturation temperature rise per bar above 1 bar
	SteamTempPerBar = 10.0

	// EfficiencyImprovement is the efficiency gain (percentage points) targeted by optimization
	EfficiencyImprovement = 10.0

	// MaxOptimizedEfficiency caps the optimized efficiency in percent
	MaxOptimizedEfficiency = 95.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Sensitivity sweep constants
const (
	// SensitivitySpanC is the half-width of the feedwater temperature sweep
	SensitivitySpanC = 20.0

	// SensitivityPoints is the number of samples in the sweep
	SensitivityPoints = 10
)

// Request defaults applied by the server when a field is omitted.
const (
	DefaultFeedwaterTemp = 80.0
	DefaultSteamPressure = 10.0
	DefaultFuelFlow      = 0.5
	DefaultEfficiency    = 85.0
)

// Display constants
const (
	// ResultPrecision is the number of decimals shown for result fields
	ResultPrecision = 2

	// EnergyUnit is appended to energy values in summaries
	EnergyUnit = "MJ/s"

	// PlotColor is the trace colour used for generated charts
	PlotColor = "#4682B4"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the raw API response format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of the CLI configuration
	EnvPrefix = "BOILER"
)

// Server configuration defaults
const (
	// OptimizePath is the optimization endpoint path
	OptimizePath = "/api/optimize"

	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultCacheTTL is the default lifetime of cached optimization responses
	DefaultCacheTTL = "10m"
)
