// Package loans computes equated monthly installments and amortization
// schedules for fixed-rate loans.
//
// All functions are pure: they hold no state and perform no I/O, so they are
// safe to call from any number of goroutines.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/emi-calculator/pkg/constants"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
)

// Inputs holds the values describing a loan.
type Inputs struct {
	Principal    float64 `json:"principal" yaml:"principal" mapstructure:"principal"`
	InterestRate float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"` // annual, percent
	LoanTerm     float64 `json:"loanTerm" yaml:"loanTerm" mapstructure:"loanTerm"`             // years
}

// Entry holds the values for a given payment period.
type Entry struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Schedule is a complete amortization schedule ordered by month.
type Schedule struct {
	Inputs            Inputs  `json:"inputs"`
	MonthlyPayment    float64 `json:"monthlyPayment"`
	TotalInterestPaid float64 `json:"totalInterestPaid"`
	TotalPayment      float64 `json:"totalPayment"`
	Entries           []Entry `json:"schedule"`
}

// Last returns the final entry of the schedule and false if it is empty.
func (s Schedule) Last() (Entry, bool) {
	if len(s.Entries) == 0 {
		return Entry{}, false
	}
	return s.Entries[len(s.Entries)-1], true
}

// MonthlyRate converts an annual percentage rate into a monthly decimal rate.
func MonthlyRate(annualInterestRate float64) float64 {
	return annualInterestRate / constants.MonthsPerYear / constants.PercentageMultiplier
}

// Periods resolves a term in years to a whole number of monthly payments.
// Fractional results are rounded to the nearest month. Callers must bound
// termYears first; Validate rejects terms beyond constants.MaxPeriods.
func Periods(termYears float64) int {
	return int(math.Round(termYears * constants.MonthsPerYear))
}

// Validate checks the inputs before any arithmetic runs.
func (in Inputs) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"principal", in.Principal},
		{"interest rate", in.InterestRate},
		{"loan term", in.LoanTerm},
	}
	for _, f := range fields {
		if !mathutil.IsFinite(f.value) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidInput, f.name, f.value)
		}
	}
	months := math.Round(in.LoanTerm * constants.MonthsPerYear)
	if months < 1 {
		return fmt.Errorf("%w: %v years is less than one monthly payment", ErrInvalidTerm, in.LoanTerm)
	}
	if months > constants.MaxPeriods {
		return fmt.Errorf("%w: %v years exceeds the limit of %d monthly payments", ErrInvalidTerm, in.LoanTerm, constants.MaxPeriods)
	}
	return nil
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate, termYears float64) (float64, error) {
	in := Inputs{Principal: principal, InterestRate: annualInterestRate, LoanTerm: termYears}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return monthlyPayment(in)
}

func monthlyPayment(in Inputs) (float64, error) {
	periodicInterestRate := MonthlyRate(in.InterestRate)
	numberOfPayments := float64(Periods(in.LoanTerm))

	var payment float64
	// (1+r)^-n equals 1 when r is below float resolution, which degenerates
	// the annuity formula just like a zero rate does.
	discountFactor := 1.00 - math.Pow(1.00+periodicInterestRate, -numberOfPayments)
	if periodicInterestRate == 0 || discountFactor == 0 {
		payment = in.Principal / numberOfPayments
	} else {
		payment = in.Principal * periodicInterestRate / discountFactor
	}

	if !mathutil.IsFinite(payment) {
		return 0, fmt.Errorf("%w: inputs produce a non-finite payment", ErrInvalidInput)
	}
	return payment, nil
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingBalance, annualInterestRate float64) float64 {
	return remainingBalance * MonthlyRate(annualInterestRate)
}

// CalculateSchedule creates a complete amortization schedule for a loan.
// Totals are accumulated over every period rather than read from the last entry.
func CalculateSchedule(principal, annualInterestRate, termYears float64) (Schedule, error) {
	in := Inputs{Principal: principal, InterestRate: annualInterestRate, LoanTerm: termYears}
	if err := in.Validate(); err != nil {
		return Schedule{}, err
	}

	payment, err := monthlyPayment(in)
	if err != nil {
		return Schedule{}, err
	}

	numberOfPayments := Periods(in.LoanTerm)
	schedule := Schedule{
		Inputs:         in,
		MonthlyPayment: payment,
		Entries:        make([]Entry, 0, numberOfPayments),
	}

	remainingBalance := in.Principal
	for month := 1; month <= numberOfPayments; month++ {
		interest := CalculateInterestPayment(remainingBalance, in.InterestRate)
		principalPortion := payment - interest
		remainingBalance -= principalPortion

		schedule.Entries = append(schedule.Entries, Entry{
			Month:     month,
			Payment:   payment,
			Principal: principalPortion,
			Interest:  interest,
			// Clamp the floating point residual of the final period.
			RemainingBalance: math.Max(0, remainingBalance),
		})
		schedule.TotalInterestPaid += interest
		schedule.TotalPayment += payment
	}

	if !mathutil.IsFinite(schedule.TotalInterestPaid) || !mathutil.IsFinite(schedule.TotalPayment) {
		return Schedule{}, fmt.Errorf("%w: inputs produce non-finite schedule totals", ErrInvalidInput)
	}
	return schedule, nil
}

// Calculate is CalculateSchedule for an Inputs value.
func Calculate(in Inputs) (Schedule, error) {
	return CalculateSchedule(in.Principal, in.InterestRate, in.LoanTerm)
}
