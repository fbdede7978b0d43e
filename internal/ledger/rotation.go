// Package ledger implements the periodic ledger rotation and append
// engine: picking the monthly tab a transaction belongs to, cloning it
// from the previous month's template when it is new, and appending the
// transaction row.
package ledger

import "github.com/BistonN/Bills-bot/internal/core"

// CutoverDay is the day of month from which new transactions target
// the following period. Expenses logged in the last days of a month
// belong to the upcoming billing period.
const CutoverDay = 26

// TargetLabel returns the period label a transaction logged on the
// given date should be appended to.
func TargetLabel(d core.Date) (string, error) {
	if d.Day() >= CutoverDay {
		return core.NextLabel(d)
	}
	return core.CurrentLabel(d)
}
