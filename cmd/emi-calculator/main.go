package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/emi-calculator/internal/config"
	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/loans"
	"github.com/iwvelando/emi-calculator/pkg/output"
	"github.com/iwvelando/emi-calculator/pkg/validation"
	"go.uber.org/zap"
)

// loadConfiguration reads the config file, falling back to defaults when the
// default path does not exist.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	return config.LoadConfiguration(path)
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	principal := flag.Float64("principal", 0, "loan amount override")
	rate := flag.Float64("rate", 0, "annual interest rate override, in percent")
	term := flag.Float64("term", 0, "loan term override, in years")
	currency := flag.String("currency", "", "display currency override (e.g. USD, INR)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	conf, err := loadConfiguration(*configLocation, set["config"])
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	displayCurrency := conf.Display.Currency
	if *currency != "" {
		displayCurrency = *currency
		if err := validation.ValidateCurrency(displayCurrency); err != nil {
			logger.Fatal(err.Error(),
				zap.String("op", "main"),
			)
		}
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Debug("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	inputs := conf.Loan
	if set["principal"] {
		inputs.Principal = *principal
	}
	if set["rate"] {
		inputs.InterestRate = *rate
	}
	if set["term"] {
		inputs.LoanTerm = *term
	}

	schedule, err := loans.Calculate(inputs)
	if err != nil {
		logger.Fatal("failed to calculate amortization schedule",
			zap.String("op", "main"),
			zap.Float64("principal", inputs.Principal),
			zap.Float64("interestRate", inputs.InterestRate),
			zap.Float64("loanTerm", inputs.LoanTerm),
			zap.Error(err),
		)
	}

	logger.Debug("amortization schedule computed",
		zap.String("op", "main"),
		zap.Float64("monthlyPayment", schedule.MonthlyPayment),
		zap.Int("months", len(schedule.Entries)),
	)

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, schedule, displayCurrency)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, schedule)
	}
}
