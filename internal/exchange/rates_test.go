package exchange

import (
	"math"
	"testing"
	"time"
)

func sampleTable() RateTable {
	return newRateTable("usd", map[string]float64{
		"usd": 1,
		"INR": 80,
		"EUR": 0.8,
		"XXX": 0,
	}, time.Time{})
}

func TestRateTableLookup(t *testing.T) {
	table := sampleTable()
	if table.Base != "USD" {
		t.Errorf("expected upper-cased base, got %s", table.Base)
	}

	rate, ok := table.Lookup(" inr")
	if !ok || rate != 80 {
		t.Errorf("Lookup(inr) = %v, %v", rate, ok)
	}
	if _, ok := table.Lookup("GBP"); ok {
		t.Error("expected GBP to be missing")
	}
}

func TestRateTableConvert(t *testing.T) {
	table := sampleTable()
	tests := []struct {
		name     string
		amount   float64
		from     string
		to       string
		expected float64
	}{
		{"Base to rupees", 10, "USD", "INR", 800},
		{"Rupees to euros", 800, "INR", "EUR", 8},
		{"Same currency", 42, "EUR", "EUR", 42},
		{"Unknown source uses unit rate", 5, "GBP", "INR", 400},
		{"Unknown target uses unit rate", 400, "INR", "GBP", 5},
		{"Zero rate uses unit rate", 3, "XXX", "USD", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Convert(tt.amount, tt.from, tt.to)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Convert(%v, %s, %s) = %v, expected %v", tt.amount, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestRateTablePage(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name       string
		page       int
		size       int
		codes      []string
		totalPages int
	}{
		{"First page", 1, 3, []string{"EUR", "INR", "USD"}, 2},
		{"Partial last page", 2, 3, []string{"XXX"}, 2},
		{"Past the end", 3, 3, []string{}, 2},
		{"Page below one", 0, 2, []string{"EUR", "INR"}, 2},
		{"No page size", 1, 0, []string{"EUR", "INR", "USD", "XXX"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Page(tt.page, tt.size)
			if got.TotalRates != 4 || got.TotalPages != tt.totalPages {
				t.Errorf("expected 4 rates over %d pages, got %d over %d", tt.totalPages, got.TotalRates, got.TotalPages)
			}
			if got.Base != "USD" {
				t.Errorf("expected base USD, got %q", got.Base)
			}
			if len(got.Rates) != len(tt.codes) {
				t.Fatalf("expected %d rates, got %+v", len(tt.codes), got.Rates)
			}
			for i, code := range tt.codes {
				if got.Rates[i].Code != code {
					t.Errorf("rate %d: expected %s, got %s", i, code, got.Rates[i].Code)
				}
			}
		})
	}
}
