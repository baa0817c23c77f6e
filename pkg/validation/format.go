// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/format"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(outputFormat string) error {
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, outputFormat)
	}
	return nil
}

// ValidateCurrency checks that code names one of the display currencies.
func ValidateCurrency(code string) error {
	if _, ok := format.Lookup(code); !ok {
		codes := make([]string, 0, len(format.Currencies()))
		for _, c := range format.Currencies() {
			codes = append(codes, c.Code)
		}
		return fmt.Errorf("unsupported currency %q, expected one of %s", code, strings.Join(codes, ", "))
	}
	return nil
}
