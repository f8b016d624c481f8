package service

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"carpool/internal/models"
	"carpool/internal/repository"
	"carpool/internal/validation"
)

// ExportData is the JSON document written by an export run
type ExportData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Month      string            `json:"month,omitempty"` // empty for a full export
	Members    []models.Member   `json:"members"`
	Entries    []models.DayEntry `json:"entries"`
}

// ExportService dumps the ledger as JSON, either one month or everything.
// Used by cmd/export for offline backups.
type ExportService struct {
	memberRepo *repository.MemberRepository
	entryRepo  *repository.EntryRepository
}

// NewExportService creates a new export service
func NewExportService(memberRepo *repository.MemberRepository, entryRepo *repository.EntryRepository) *ExportService {
	return &ExportService{memberRepo: memberRepo, entryRepo: entryRepo}
}

// Export writes members and entries as indented JSON. A non-empty month
// restricts entries to that YYYY-MM month.
func (s *ExportService) Export(w io.Writer, month string) error {
	members, err := s.memberRepo.ListMembers()
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	var entries []models.DayEntry
	if month != "" {
		if err := validation.ValidateMonth(month); err != nil {
			return err
		}
		entries, err = s.entryRepo.ListEntriesByMonth(month)
	} else {
		entries, err = s.listAllEntries()
	}
	if err != nil {
		return fmt.Errorf("failed to list entries: %w", err)
	}

	data := ExportData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
		Month:      month,
		Members:    members,
		Entries:    entries,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// listAllEntries walks every month that has entries. Months are cheap to
// enumerate from the date key's YYYY-MM prefix.
func (s *ExportService) listAllEntries() ([]models.DayEntry, error) {
	months, err := s.entryRepo.ListMonths()
	if err != nil {
		return nil, err
	}
	var all []models.DayEntry
	for _, month := range months {
		entries, err := s.entryRepo.ListEntriesByMonth(month)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
