// Package exchange looks up currency exchange rates for the rates table.
// Rates never feed into amortization results.
package exchange

import (
	"sort"
	"strings"
	"time"
)

// Rate is the value of one unit of the base currency in Code.
type Rate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// RateTable is a set of rates quoted against Base, sorted by code.
type RateTable struct {
	Base      string    `json:"base"`
	Rates     []Rate    `json:"rates"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RatePage is one page of a RateTable. Page is 1-based.
type RatePage struct {
	RateTable
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalRates int `json:"totalRates"`
	TotalPages int `json:"totalPages"`
}

// newRateTable builds a sorted table from a code to rate map.
func newRateTable(base string, conversionRates map[string]float64, fetchedAt time.Time) RateTable {
	rates := make([]Rate, 0, len(conversionRates))
	for code, rate := range conversionRates {
		rates = append(rates, Rate{Code: strings.ToUpper(code), Rate: rate})
	}
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Code < rates[j].Code
	})
	return RateTable{Base: strings.ToUpper(base), Rates: rates, FetchedAt: fetchedAt}
}

// Lookup returns the rate for code.
func (t RateTable) Lookup(code string) (float64, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	i := sort.Search(len(t.Rates), func(i int) bool {
		return t.Rates[i].Code >= normalized
	})
	if i < len(t.Rates) && t.Rates[i].Code == normalized {
		return t.Rates[i].Rate, true
	}
	return 0, false
}

// Convert converts amount between two currencies of the table. A code that
// is missing from the table, or has a zero rate, is treated as a rate of 1.
func (t RateTable) Convert(amount float64, from, to string) float64 {
	fromRate, ok := t.Lookup(from)
	if !ok || fromRate == 0 {
		fromRate = 1
	}
	toRate, ok := t.Lookup(to)
	if !ok || toRate == 0 {
		toRate = 1
	}
	return amount / fromRate * toRate
}

// Page returns the rates on page (1-based) when split into pages of size.
// A size of zero or less puts every rate on a single page, and pages past
// the end are empty.
func (t RateTable) Page(page, size int) RatePage {
	total := len(t.Rates)
	if size <= 0 {
		size = total
	}
	if page < 1 {
		page = 1
	}

	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	result := RatePage{
		RateTable:  RateTable{Base: t.Base, FetchedAt: t.FetchedAt, Rates: []Rate{}},
		Page:       page,
		PageSize:   size,
		TotalRates: total,
		TotalPages: totalPages,
	}
	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := start + size
	if end > total {
		end = total
	}
	result.Rates = t.Rates[start:end]
	return result
}
