// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/iwvelando/emi-calculator/pkg/loans"
)

// FindEntry finds the entry for month in a schedule.
// Returns a pointer to the entry if found, nil otherwise.
func FindEntry(schedule loans.Schedule, month int) *loans.Entry {
	for i := range schedule.Entries {
		if schedule.Entries[i].Month == month {
			return &schedule.Entries[i]
		}
	}
	return nil
}

// SumEntries adds up the payment, principal and interest columns.
func SumEntries(schedule loans.Schedule) (payment, principal, interest float64) {
	for _, entry := range schedule.Entries {
		payment += entry.Payment
		principal += entry.Principal
		interest += entry.Interest
	}
	return payment, principal, interest
}

// AlmostEqual reports whether a and b differ by at most tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
