package format

import "strings"

// CurrencyInfo describes a currency offered for display.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var commonCurrencies = []CurrencyInfo{
	{Code: "USD", Name: "US Dollar", Symbol: "$"},
	{Code: "EUR", Name: "Euro", Symbol: "€"},
	{Code: "GBP", Name: "British Pound", Symbol: "£"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$"},
}

// Currencies returns a copy of the common currency catalogue.
func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, len(commonCurrencies))
	copy(out, commonCurrencies)
	return out
}

// Lookup finds a currency by its ISO code, case-insensitively.
func Lookup(code string) (CurrencyInfo, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, c := range commonCurrencies {
		if c.Code == normalized {
			return c, true
		}
	}
	return CurrencyInfo{}, false
}

// Symbol returns the display symbol for code. Unknown codes are shown as
// the code followed by a space.
func Symbol(code string) string {
	if c, ok := Lookup(code); ok {
		return c.Symbol
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return ""
	}
	return normalized + " "
}
