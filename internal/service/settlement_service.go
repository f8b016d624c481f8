package service

import (
	"fmt"
	"sort"

	"carpool/internal/ledger"
	"carpool/internal/models"
	"carpool/internal/repository"
	"carpool/internal/validation"
)

// SettlementService derives the month view: balances and the settle-up
// transfer plan. Nothing here is persisted; it is recomputed from the
// month's entries every time.
type SettlementService struct {
	entryRepo  *repository.EntryRepository
	memberRepo *repository.MemberRepository
}

// NewSettlementService creates a new settlement service
func NewSettlementService(entryRepo *repository.EntryRepository, memberRepo *repository.MemberRepository) *SettlementService {
	return &SettlementService{entryRepo: entryRepo, memberRepo: memberRepo}
}

// SettleMonth computes balances and the minimal transfer plan for a month
func (s *SettlementService) SettleMonth(month string) (*models.Settlement, error) {
	if err := validation.ValidateMonth(month); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	entries, err := s.entryRepo.ListEntriesByMonth(month)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	balances := ledger.Balances(members, entries)

	settlement := &models.Settlement{
		Month:      month,
		TotalSpent: ledger.MonthTotal(entries),
		Balances:   make([]models.MemberBalance, 0, len(balances)),
		Transfers:  ledger.Settle(balances),
	}

	// Report balances in member-roster order, then any members that were
	// deactivated and dropped off the roster, by ID.
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if b, ok := balances[m.ID]; ok {
			settlement.Balances = append(settlement.Balances, models.MemberBalance{
				MemberID: m.ID,
				Name:     m.Name,
				Balance:  b,
			})
			seen[m.ID] = true
		}
	}
	var rest []string
	for id := range balances {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		settlement.Balances = append(settlement.Balances, models.MemberBalance{
			MemberID: id,
			Name:     id,
			Balance:  balances[id],
		})
	}

	return settlement, nil
}
