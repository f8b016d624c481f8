package ledger

import (
	"github.com/strongo/decimal"

	"carpool/internal/models"
)

// Balances computes each member's signed net position from a set of day
// entries. The driver of an entry is credited its full total (they fronted
// the cost) and every rider, driver included, is debited their own charge.
// Members appearing in entries but not in the member list (deactivated
// later) still accumulate a balance so the month stays conserved.
func Balances(members []models.Member, entries []models.DayEntry) map[string]decimal.Decimal64p2 {
	balances := make(map[string]decimal.Decimal64p2, len(members))
	for _, m := range members {
		if m.Active {
			balances[m.ID] = 0
		}
	}

	for _, e := range entries {
		balances[e.DriverID] += e.TotalAmount
		for _, r := range e.Riders {
			balances[r.MemberID] -= r.Charge
		}
	}

	return balances
}

// MonthTotal sums the day totals of a set of entries
func MonthTotal(entries []models.DayEntry) decimal.Decimal64p2 {
	var total decimal.Decimal64p2
	for _, e := range entries {
		total += e.TotalAmount
	}
	return total
}
