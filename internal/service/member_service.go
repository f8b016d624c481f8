package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/strongo/decimal"

	"carpool/internal/models"
	"carpool/internal/repository"
	"carpool/internal/validation"
)

var ErrMemberNotFound = errors.New("member not found")

// MemberService handles member business logic
type MemberService struct {
	memberRepo *repository.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo *repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// AddMember creates a new member with unset rates
func (s *MemberService) AddMember(name string) (*models.Member, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	member, err := s.memberRepo.CreateMember(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// ListMembers retrieves every member, deactivated ones included
func (s *MemberService) ListMembers() ([]models.Member, error) {
	members, err := s.memberRepo.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetMember retrieves one member
func (s *MemberService) GetMember(id string) (*models.Member, error) {
	member, err := s.memberRepo.GetMemberByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// UpdateRates sets a member's driving rates. Rates cannot be negative and
// a round trip can't cost less than a one-way trip. Edits apply going
// forward only; saved entries keep the rate snapshot they were made with.
func (s *MemberService) UpdateRates(id string, oneWay, twoWay decimal.Decimal64p2) (*models.Member, error) {
	if oneWay < 0 {
		return nil, validation.Error{Field: "one_way_total", Message: "rate cannot be negative"}
	}
	if twoWay < 0 {
		return nil, validation.Error{Field: "two_way_total", Message: "rate cannot be negative"}
	}
	if oneWay > 0 && twoWay > 0 && twoWay < oneWay {
		return nil, validation.Error{Field: "two_way_total", Message: "round-trip rate cannot be below the one-way rate"}
	}

	err := s.memberRepo.UpdateRates(id, oneWay, twoWay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update rates: %w", err)
	}
	return s.GetMember(id)
}

// DeactivateMember soft-deletes a member. Their history stays intact.
func (s *MemberService) DeactivateMember(id string) error {
	err := s.memberRepo.Deactivate(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMemberNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	return nil
}
