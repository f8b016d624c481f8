package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"carpool/internal/models"
	"carpool/internal/repository"
	"carpool/internal/security"
	"carpool/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid group name or passcode")
	ErrSessionInvalid     = errors.New("session invalid or expired")
)

// AuthService handles the shared group credential. One credential per
// group; everyone in the carpool shares it.
type AuthService struct {
	groupRepo *repository.GroupRepository
	signer    *security.TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(groupRepo *repository.GroupRepository, signer *security.TokenSigner) *AuthService {
	return &AuthService{groupRepo: groupRepo, signer: signer}
}

// Bootstrap creates the initial group on first run when none exists and
// credentials were provided via configuration
func (s *AuthService) Bootstrap(name, passcode string) error {
	count, err := s.groupRepo.CountGroups()
	if err != nil {
		return fmt.Errorf("failed to check for existing groups: %w", err)
	}
	if count > 0 || name == "" || passcode == "" {
		return nil
	}

	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidatePasscode(passcode); err != nil {
		return err
	}

	hash, err := security.HashPasscode(passcode)
	if err != nil {
		return fmt.Errorf("failed to hash passcode: %w", err)
	}
	if _, err := s.groupRepo.CreateGroup(name, hash); err != nil {
		return err
	}

	log.Printf("Bootstrapped group %q", name)
	return nil
}

// Login verifies the group credential and issues a session token
func (s *AuthService) Login(name, passcode string) (string, time.Time, error) {
	group, err := s.groupRepo.GetGroupByName(name)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to look up group: %w", err)
	}
	if group == nil || !security.CheckPasscode(group.PasscodeHash, passcode) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.signer.Issue(group.ID)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateSession verifies a session token and resolves its group
func (s *AuthService) ValidateSession(token string) (*models.Group, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	group, err := s.groupRepo.GetGroupByID(claims.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session group: %w", err)
	}
	if group == nil {
		return nil, ErrSessionInvalid
	}
	return group, nil
}
