// Package format renders raw amounts for display. The amortization engine
// never formats; everything here is presentation.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with the symbol of code and thousands
// separators (e.g., "-₹1,234.56").
func Currency(amount float64, code string) string {
	if !mathutil.IsFinite(amount) {
		return Symbol(code) + nonFinite(amount)
	}
	d := decimal.NewFromFloat(amount).Round(constants.CurrencyDecimals)
	formatted := groupThousands(d.Abs().StringFixed(constants.CurrencyDecimals))
	if d.IsNegative() {
		return "-" + Symbol(code) + formatted
	}
	return Symbol(code) + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	d := decimal.NewFromFloat(amount).Round(constants.CurrencyDecimals)
	formatted := groupThousands(d.Abs().StringFixed(constants.CurrencyDecimals))
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Percent renders an annual rate such as 8.5 as "8.50%".
func Percent(rate float64) string {
	if !mathutil.IsFinite(rate) {
		return nonFinite(rate) + "%"
	}
	return decimal.NewFromFloat(rate).StringFixed(constants.CurrencyDecimals) + "%"
}

// nonFinite renders NaN and infinities, which decimal cannot represent.
func nonFinite(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
