// Package ledger holds the pure money math: the weighted trip split, the
// per-member balance computation and the greedy settle-up plan. Everything
// here works on exact cent values (decimal.Decimal64p2) and has no
// dependencies on storage or transport.
package ledger

import (
	"fmt"

	"github.com/strongo/decimal"

	"carpool/internal/models"
	"carpool/internal/validation"
)

// RiderInput names one rider and their trip type for a day
type RiderInput struct {
	MemberID string
	TripType models.DayType
}

// Split apportions a driver's day total across riders in proportion to
// trip units (one_way=1, two_way=2). Each share is rounded to the cent
// half away from zero; any leftover rounding drift is added to the
// driver's own charge so the charges always sum to the day total exactly.
// Rider order is preserved in the result.
func Split(dayTotal decimal.Decimal64p2, driverID string, riders []RiderInput) ([]models.RiderCharge, decimal.Decimal64p2, error) {
	if dayTotal <= 0 {
		return nil, 0, validation.Error{Field: "day_total", Message: "day total must be positive"}
	}
	if len(riders) == 0 {
		return nil, 0, validation.Error{Field: "riders", Message: "at least one rider is required"}
	}

	driverIdx := -1
	totalUnits := 0
	for i, r := range riders {
		if !models.IsValidDayType(string(r.TripType)) {
			return nil, 0, validation.Error{
				Field:   "riders",
				Message: fmt.Sprintf("rider %s has unknown trip type %q", r.MemberID, r.TripType),
			}
		}
		if r.MemberID == driverID {
			driverIdx = i
		}
		totalUnits += r.TripType.Units()
	}
	if driverIdx < 0 {
		return nil, 0, validation.Error{Field: "driver_id", Message: "driver must be among the riders"}
	}
	if totalUnits <= 0 {
		return nil, 0, validation.Error{Field: "riders", Message: "no valid riders/units"}
	}

	charges := make([]models.RiderCharge, len(riders))
	var sum decimal.Decimal64p2
	for i, r := range riders {
		units := r.TripType.Units()
		charge := decimal.NewDecimal64p2FromFloat64(
			dayTotal.AsFloat64() * float64(units) / float64(totalUnits),
		)
		charges[i] = models.RiderCharge{
			MemberID: r.MemberID,
			TripType: r.TripType,
			Units:    units,
			Charge:   charge,
		}
		sum += charge
	}

	// Cent values are exact, so the drift is too. The driver absorbs the
	// whole residual rather than spreading it a cent at a time; it is
	// bounded by half a cent per rider.
	if drift := dayTotal - sum; drift != 0 {
		charges[driverIdx].Charge += drift
	}

	return charges, dayTotal, nil
}
