// Package core holds the ledger domain: calendar dates, transactions
// and the period naming convention used for worksheet tab titles.
package core

import "fmt"

// monthAbbrev maps month numbers to the pt-BR tab naming used in the
// spreadsheet. The label convention is "<abbrev>/<two-digit year>",
// e.g. "ago/25" for August 2025.
var monthAbbrev = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// PeriodLabel maps (year, month) to the worksheet tab title for that
// period. Injective over valid inputs: no two (year, month) pairs within
// a century share a label. Month outside 1..12 fails with ErrInvalidMonth.
func PeriodLabel(year, month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return fmt.Sprintf("%s/%02d", monthAbbrev[month-1], ((year % 100) + 100) % 100), nil
}

// CurrentLabel returns the period label for the month the date falls in.
func CurrentLabel(d Date) (string, error) {
	return PeriodLabel(d.Year(), d.Month())
}

// NextLabel returns the period label for the month after the date's,
// wrapping December into January of the following year.
func NextLabel(d Date) (string, error) {
	year, month := d.Year(), d.Month()+1
	if month > 12 {
		month = 1
		year++
	}
	return PeriodLabel(year, month)
}
