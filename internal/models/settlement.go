package models

import (
	"time"

	"github.com/strongo/decimal"
)

// Group is the tenant boundary: one set of members, entries and settings
// behind a shared credential.
type Group struct {
	ID           int64
	Name         string
	PasscodeHash string
	CreatedAt    time.Time
}

// MemberBalance is one member's signed net position for a month.
// Positive means the group owes this member, negative means they owe.
type MemberBalance struct {
	MemberID string              `json:"member_id"`
	Name     string              `json:"name"`
	Balance  decimal.Decimal64p2 `json:"balance"`
}

// Transfer is one suggested settle-up payment
type Transfer struct {
	FromID string              `json:"from"`
	ToID   string              `json:"to"`
	Amount decimal.Decimal64p2 `json:"amount"`
}

// Settlement is the derived month view: balances plus the minimal
// transfer plan that clears them.
type Settlement struct {
	Month      string              `json:"month"` // YYYY-MM
	TotalSpent decimal.Decimal64p2 `json:"total_spent"`
	Balances   []MemberBalance     `json:"balances"`
	Transfers  []Transfer          `json:"transfers"`
}
