package models

import (
	"time"

	"github.com/strongo/decimal"
)

// DayType describes whether the driver made a one-way or round-trip commute
type DayType string

const (
	DayTypeOneWay DayType = "one_way"
	DayTypeTwoWay DayType = "two_way"
)

// IsValidDayType reports whether s is a known day type
func IsValidDayType(s string) bool {
	return s == string(DayTypeOneWay) || s == string(DayTypeTwoWay)
}

// Units returns the split weight of a trip type: one_way counts as one
// unit, two_way as two.
func (t DayType) Units() int {
	if t == DayTypeTwoWay {
		return 2
	}
	return 1
}

// RiderCharge is one rider's share of a day entry. The driver always
// appears among the riders with a charge of their own.
type RiderCharge struct {
	MemberID string              `json:"member_id"`
	TripType DayType             `json:"trip_type"`
	Units    int                 `json:"units"`
	Charge   decimal.Decimal64p2 `json:"charge"`
}

// DayEntry is the record of one carpool day. Identity is the date: saving
// an entry for a date that already has one replaces it wholesale, riders
// included.
type DayEntry struct {
	Date         string              `json:"date"` // YYYY-MM-DD, also the entry ID
	DriverID     string              `json:"driver_id"`
	DayType      DayType             `json:"day_type"`
	DayTotalUsed decimal.Decimal64p2 `json:"day_total_used"` // driver's rate snapshot at save time
	TotalAmount  decimal.Decimal64p2 `json:"total_amount"`
	Notes        string              `json:"notes"`
	Revision     int64               `json:"revision"`
	CreatedAt    time.Time           `json:"created_at"`
	Riders       []RiderCharge       `json:"riders"`
}
