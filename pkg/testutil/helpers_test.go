package testutil

import (
	"testing"

	"github.com/iwvelando/emi-calculator/pkg/loans"
)

func TestFindEntry(t *testing.T) {
	schedule, err := loans.CalculateSchedule(12000, 0, 1)
	if err != nil {
		t.Fatalf("CalculateSchedule() error = %v", err)
	}

	tests := []struct {
		name        string
		month       int
		expectFound bool
	}{
		{"First month", 1, true},
		{"Last month", 12, true},
		{"Month zero", 0, false},
		{"Past the term", 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := FindEntry(schedule, tt.month)
			if tt.expectFound != (entry != nil) {
				t.Fatalf("FindEntry(%d) found = %v, expected %v", tt.month, entry != nil, tt.expectFound)
			}
			if entry != nil && entry.Month != tt.month {
				t.Errorf("FindEntry(%d) returned month %d", tt.month, entry.Month)
			}
		})
	}
}

func TestSumEntries(t *testing.T) {
	schedule, err := loans.CalculateSchedule(12000, 6, 1)
	if err != nil {
		t.Fatalf("CalculateSchedule() error = %v", err)
	}

	payment, principal, interest := SumEntries(schedule)
	if !AlmostEqual(principal, 12000, 1e-6) {
		t.Errorf("principal sum = %v, expected 12000", principal)
	}
	if !AlmostEqual(payment, schedule.TotalPayment, 1e-9) {
		t.Errorf("payment sum = %v, expected %v", payment, schedule.TotalPayment)
	}
	if !AlmostEqual(interest, schedule.TotalInterestPaid, 1e-9) {
		t.Errorf("interest sum = %v, expected %v", interest, schedule.TotalInterestPaid)
	}
}
