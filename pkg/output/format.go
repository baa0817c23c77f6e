// Package output provides utilities for formatting and displaying amortization schedules.
package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/emi-calculator/pkg/format"
	"github.com/iwvelando/emi-calculator/pkg/loans"
	"github.com/iwvelando/emi-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
// Amounts are shown with the symbol of currency; their values are unchanged.
func PrettyFormat(w io.Writer, schedule loans.Schedule, currency string) {
	p := message.NewPrinter(language.English)
	symbol := format.Symbol(currency)

	fmt.Fprintf(w, "--- Loan of %s at %s for %v years ---\n",
		format.Currency(schedule.Inputs.Principal, currency),
		format.Percent(schedule.Inputs.InterestRate),
		schedule.Inputs.LoanTerm)
	fmt.Fprintf(w, "Monthly payment (EMI): %s\n", format.Currency(schedule.MonthlyPayment, currency))
	fmt.Fprintf(w, "Total interest paid:   %s\n", format.Currency(schedule.TotalInterestPaid, currency))
	fmt.Fprintf(w, "Total amount paid:     %s\n\n", format.Currency(schedule.TotalPayment, currency))

	fmt.Fprintf(w, "Month | Payment | Principal | Interest | Remaining Balance\n")
	fmt.Fprintf(w, "_____ | _______ | _________ | ________ | _________________\n")
	for _, entry := range schedule.Entries {
		_, _ = p.Fprintf(w, "%d | %s%.2f | %s%.2f | %s%.2f | %s%.2f\n",
			entry.Month,
			symbol, entry.Payment,
			symbol, entry.Principal,
			symbol, entry.Interest,
			symbol, entry.RemainingBalance)
	}
}

// CsvFormat writes the schedule in comma-separated value format rounded to cents.
func CsvFormat(w io.Writer, schedule loans.Schedule) {
	fmt.Fprintf(w, `"month","payment","principal","interest","remaining balance"`)
	fmt.Fprintf(w, "\n")
	for _, entry := range schedule.Entries {
		values := mathutil.RoundAll([]float64{entry.Payment, entry.Principal, entry.Interest, entry.RemainingBalance})
		fmt.Fprintf(w, `"%d","%.2f","%.2f","%.2f","%.2f"`, entry.Month, values[0], values[1], values[2], values[3])
		fmt.Fprintf(w, "\n")
	}
}

// CsvString returns the CsvFormat rendering as a string.
func CsvString(schedule loans.Schedule) string {
	var buf bytes.Buffer
	CsvFormat(&buf, schedule)
	return buf.String()
}
