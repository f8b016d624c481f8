package models

import (
	"time"

	"github.com/strongo/decimal"
)

// Member represents one participant of the carpool group.
// Members are never physically deleted; deactivation clears the Active flag
// so historical entries keep resolving.
type Member struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Active      bool                `json:"active"`
	OneWayTotal decimal.Decimal64p2 `json:"one_way_total"`
	TwoWayTotal decimal.Decimal64p2 `json:"two_way_total"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// RateFor returns the member's driving rate for a day type.
func (m *Member) RateFor(dayType DayType) decimal.Decimal64p2 {
	if dayType == DayTypeTwoWay {
		return m.TwoWayTotal
	}
	return m.OneWayTotal
}
