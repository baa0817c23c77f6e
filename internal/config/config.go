// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/loans"
	"github.com/iwvelando/emi-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for emi-calculator.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Display  Preferences    `yaml:"display,omitempty"`
	Loan     loans.Inputs   `yaml:"loan,omitempty"`
	Exchange ExchangeConfig `yaml:"exchange,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Preferences is the display context handed to presentation code. It only
// affects how amounts are rendered, never their values.
type Preferences struct {
	Currency string `yaml:"currency,omitempty" json:"currency"`
	DarkMode bool   `yaml:"darkMode,omitempty" json:"darkMode"`
}

// ExchangeConfig configures the exchange rate lookup.
type ExchangeConfig struct {
	BaseURL      string        `yaml:"baseURL,omitempty"`
	APIKey       string        `yaml:"apiKey,omitempty"`
	BaseCurrency string        `yaml:"baseCurrency,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	CacheTTL     time.Duration `yaml:"cacheTTL,omitempty"`
	RedisAddr    string        `yaml:"redisAddr,omitempty"` // empty uses an in-memory cache
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("display.currency", constants.DefaultCurrency)
	v.SetDefault("exchange.baseURL", constants.DefaultExchangeBaseURL)
	v.SetDefault("exchange.baseCurrency", constants.DefaultCurrency)
	v.SetDefault("exchange.timeout", constants.DefaultExchangeTimeout)
	v.SetDefault("exchange.cacheTTL", constants.DefaultExchangeCacheTTL)

	_ = v.BindEnv("exchange.apiKey", constants.ExchangeAPIKeyEnv)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return conf
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Display.Currency = strings.ToUpper(strings.TrimSpace(configuration.Display.Currency))
	configuration.Exchange.BaseCurrency = strings.ToUpper(strings.TrimSpace(configuration.Exchange.BaseCurrency))
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateCurrency(c.Display.Currency); err != nil {
		warnings = append(warnings, fmt.Sprintf("display currency: %v; amounts will be prefixed with %q",
			err, format.Symbol(c.Display.Currency)))
	}
	if c.Exchange.APIKey == "" {
		warnings = append(warnings, fmt.Sprintf("exchange rate API key is not configured; set exchange.apiKey or %s",
			constants.ExchangeAPIKeyEnv))
	}
	if c.Exchange.CacheTTL < 0 {
		warnings = append(warnings, "exchange.cacheTTL is negative; rates will not be cached")
	}
	if err := c.Loan.Validate(); err != nil && c.Loan != (loans.Inputs{}) {
		warnings = append(warnings, fmt.Sprintf("default loan cannot be calculated: %v", err))
	}

	return warnings
}
