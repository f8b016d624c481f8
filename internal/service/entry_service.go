package service

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"carpool/internal/ledger"
	"carpool/internal/models"
	"carpool/internal/repository"
	"carpool/internal/validation"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrRatesNotSet   = errors.New("driver rates not set")
)

// EntryService orchestrates saving a day entry: member lookup, rate
// resolution, the trip split, and the atomic replacement of any prior
// entry for the same date.
type EntryService struct {
	entryRepo  *repository.EntryRepository
	memberRepo *repository.MemberRepository

	// Upserts for the same date are serialized; the store itself has no
	// row locking, so without this two concurrent saves could interleave
	// their delete-then-insert cycles.
	dateLocks sync.Map // date string -> *sync.Mutex
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo *repository.EntryRepository, memberRepo *repository.MemberRepository) *EntryService {
	return &EntryService{entryRepo: entryRepo, memberRepo: memberRepo}
}

// UpsertEntry validates and saves the entry for a date, replacing any
// prior entry for that date wholesale. Saving the same input twice yields
// the same stored entry (at a higher revision), never duplicate rows.
func (s *EntryService) UpsertEntry(date, driverID string, dayType models.DayType, riders []ledger.RiderInput, notes string) (*models.DayEntry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}
	if !models.IsValidDayType(string(dayType)) {
		return nil, validation.Error{Field: "day_type", Message: fmt.Sprintf("unknown day type %q", dayType)}
	}
	if driverID == "" {
		return nil, validation.Error{Field: "driver_id", Message: "driver is required"}
	}

	driver, err := s.memberRepo.GetMemberByID(driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve driver: %w", err)
	}
	if driver == nil {
		return nil, fmt.Errorf("%w: driver %s", ErrMemberNotFound, driverID)
	}
	if !driver.Active {
		return nil, validation.Error{Field: "driver_id", Message: "driver is deactivated"}
	}

	// Snapshot the driver's current rate; later rate edits must not
	// change entries already saved.
	dayTotal := driver.RateFor(dayType)
	if dayTotal <= 0 {
		return nil, ErrRatesNotSet
	}

	for _, r := range riders {
		member, err := s.memberRepo.GetMemberByID(r.MemberID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve rider: %w", err)
		}
		if member == nil {
			return nil, validation.Error{Field: "riders", Message: fmt.Sprintf("unknown member %s", r.MemberID)}
		}
		if !member.Active {
			return nil, validation.Error{Field: "riders", Message: fmt.Sprintf("member %s is deactivated", r.MemberID)}
		}
	}

	charges, totalAmount, err := ledger.Split(dayTotal, driverID, riders)
	if err != nil {
		return nil, err
	}

	entry := &models.DayEntry{
		Date:         date,
		DriverID:     driverID,
		DayType:      dayType,
		DayTotalUsed: dayTotal,
		TotalAmount:  totalAmount,
		Notes:        notes,
		Riders:       charges,
	}

	lock := s.lockForDate(date)
	lock.Lock()
	defer lock.Unlock()

	saved, err := s.entryRepo.ReplaceEntry(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return saved, nil
}

// GetEntry retrieves the entry for a date
func (s *EntryService) GetEntry(date string) (*models.DayEntry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return nil, err
	}
	entry, err := s.entryRepo.GetEntryByDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// ListMonth retrieves all entries of a YYYY-MM month
func (s *EntryService) ListMonth(month string) ([]models.DayEntry, error) {
	if err := validation.ValidateMonth(month); err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListEntriesByMonth(month)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes the entry for a date along with its rider charges
func (s *EntryService) DeleteEntry(date string) error {
	if err := validation.ValidateDate(date); err != nil {
		return err
	}

	lock := s.lockForDate(date)
	lock.Lock()
	defer lock.Unlock()

	err := s.entryRepo.DeleteEntry(date)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (s *EntryService) lockForDate(date string) *sync.Mutex {
	lock, _ := s.dateLocks.LoadOrStore(date, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
