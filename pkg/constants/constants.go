// Package constants provides shared constants for the emi-calculator application.
package constants

import "time"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyDecimals is the number of decimals shown for currency values
	CurrencyDecimals = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxPeriods is the longest schedule the engine will build (500 years)
	MaxPeriods = 6000
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Display defaults
const (
	// DefaultCurrency is the currency used for display when none is configured
	DefaultCurrency = "USD"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Exchange rate defaults
const (
	// DefaultExchangeBaseURL is the exchange rate API root
	DefaultExchangeBaseURL = "https://v6.exchangerate-api.com/v6"

	// ExchangeAPIKeyEnv is the environment variable holding the exchange rate API key
	ExchangeAPIKeyEnv = "EXCHANGE_RATE_API_KEY"

	// DefaultExchangeTimeout bounds a single rate fetch
	DefaultExchangeTimeout = 10 * time.Second

	// DefaultExchangeCacheTTL is how long a fetched rate table is reused
	DefaultExchangeCacheTTL = time.Hour
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultMaxTermYears caps the loan term accepted over HTTP
	DefaultMaxTermYears = 100.0

	// DefaultRateLimitRequests is the number of API requests allowed per window per client
	DefaultRateLimitRequests = 60

	// DefaultRateLimitWindow is the rate limiter refill window
	DefaultRateLimitWindow = time.Minute
)
