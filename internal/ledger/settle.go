package ledger

import (
	"sort"

	"github.com/strongo/decimal"

	"carpool/internal/models"
)

// settledSlack is the band around zero inside which a balance counts as
// settled: one cent of residue per party is tolerated.
const settledSlack = decimal.Decimal64p2(1)

type party struct {
	memberID string
	amount   decimal.Decimal64p2 // always positive
}

// Settle reduces a set of signed balances to a short list of pairwise
// transfers using the classic greedy simplification: repeatedly pay the
// largest creditor from the largest debtor. Not globally optimal, but
// deterministic and never more than n-1 transfers. Ties are broken by
// member ID so the plan is stable across runs.
func Settle(balances map[string]decimal.Decimal64p2) []models.Transfer {
	var creditors, debtors []party
	for id, b := range balances {
		switch {
		case b > settledSlack:
			creditors = append(creditors, party{memberID: id, amount: b})
		case b < -settledSlack:
			debtors = append(debtors, party{memberID: id, amount: -b})
		}
	}

	sortParties(creditors)
	sortParties(debtors)

	transfers := make([]models.Transfer, 0, len(debtors))
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		transfers = append(transfers, models.Transfer{
			FromID: debtor.memberID,
			ToID:   creditor.memberID,
			Amount: amount,
		})

		creditor.amount -= amount
		debtor.amount -= amount
		if creditor.amount <= settledSlack {
			ci++
		}
		if debtor.amount <= settledSlack {
			di++
		}
	}

	return transfers
}

// sortParties orders by amount descending, member ID ascending on ties
func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].memberID < parties[j].memberID
	})
}
