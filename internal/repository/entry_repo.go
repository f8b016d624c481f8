package repository

import (
	"database/sql"
	"fmt"

	"github.com/strongo/decimal"

	"carpool/internal/database"
	"carpool/internal/models"
)

// EntryRepository handles database operations for day entries and their
// rider charges
type EntryRepository struct {
	db *database.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *database.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// GetEntryByDate retrieves one entry with its riders, nil if absent
func (r *EntryRepository) GetEntryByDate(date string) (*models.DayEntry, error) {
	query := `SELECT date, driver_id, day_type, day_total_cents, total_cents, notes, revision, created_at
		FROM entries WHERE date = ?`
	entry, err := scanEntry(r.db.QueryRow(query, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	riders, err := r.ridersForDates(date)
	if err != nil {
		return nil, err
	}
	entry.Riders = riders[date]
	return entry, nil
}

// ListEntriesByMonth retrieves all entries whose date falls in the given
// YYYY-MM month, riders included, ordered by date
func (r *EntryRepository) ListEntriesByMonth(month string) ([]models.DayEntry, error) {
	query := `SELECT date, driver_id, day_type, day_total_cents, total_cents, notes, revision, created_at
		FROM entries WHERE date LIKE ? ORDER BY date`
	rows, err := r.db.Query(query, month+"-%")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DayEntry
	var dates []interface{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
		dates = append(dates, entry.Date)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	riders, err := r.ridersForDates(dates...)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Riders = riders[entries[i].Date]
	}
	return entries, nil
}

// ListMonths returns the distinct YYYY-MM months that have entries,
// oldest first
func (r *EntryRepository) ListMonths() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT substr(date, 1, 7) FROM entries ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to query months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, month)
	}
	return months, rows.Err()
}

// ReplaceEntry atomically replaces any prior entry and rider rows for the
// entry's date. Delete-then-insert, not a merge: a new save fully
// supersedes the old one. The revision counter survives the replacement.
func (r *EntryRepository) ReplaceEntry(entry *models.DayEntry) (*models.DayEntry, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	revision := int64(1)
	var prior int64
	err = tx.QueryRow("SELECT revision FROM entries WHERE date = ?", entry.Date).Scan(&prior)
	switch {
	case err == sql.ErrNoRows:
		// first save for this date
	case err != nil:
		return nil, fmt.Errorf("failed to read prior revision: %w", err)
	default:
		revision = prior + 1
		if _, err := tx.Exec("DELETE FROM rider_charges WHERE entry_date = ?", entry.Date); err != nil {
			return nil, fmt.Errorf("failed to delete prior charges: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM entries WHERE date = ?", entry.Date); err != nil {
			return nil, fmt.Errorf("failed to delete prior entry: %w", err)
		}
	}

	insertEntry := `INSERT INTO entries (date, driver_id, day_type, day_total_cents, total_cents, notes, revision)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.Exec(insertEntry,
		entry.Date,
		entry.DriverID,
		string(entry.DayType),
		int64(entry.DayTotalUsed),
		int64(entry.TotalAmount),
		entry.Notes,
		revision,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := insertCharges(tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	entry.Revision = revision
	return entry, nil
}

// DeleteEntry removes an entry and its rider charges
func (r *EntryRepository) DeleteEntry(date string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rider_charges WHERE entry_date = ?", date); err != nil {
		return fmt.Errorf("failed to delete rider charges: %w", err)
	}
	result, err := tx.Exec("DELETE FROM entries WHERE date = ?", date)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if err := requireRowAffected(result); err != nil {
		return err
	}

	return tx.Commit()
}

// insertCharges writes an entry's rider rows in their given order. Takes
// DBTX so it runs inside ReplaceEntry's transaction or standalone.
func insertCharges(q database.DBTX, entry *models.DayEntry) error {
	query := `INSERT INTO rider_charges (entry_date, position, member_id, trip_type, units, charge_cents)
		VALUES (?, ?, ?, ?, ?, ?)`
	for i, rider := range entry.Riders {
		_, err := q.Exec(query,
			entry.Date,
			i,
			rider.MemberID,
			string(rider.TripType),
			rider.Units,
			int64(rider.Charge),
		)
		if err != nil {
			return fmt.Errorf("failed to insert rider charge: %w", err)
		}
	}
	return nil
}

// ridersForDates loads rider charges for the given entry dates, grouped
// by date and ordered by their saved position
func (r *EntryRepository) ridersForDates(dates ...interface{}) (map[string][]models.RiderCharge, error) {
	if len(dates) == 0 {
		return map[string][]models.RiderCharge{}, nil
	}

	query := `SELECT entry_date, member_id, trip_type, units, charge_cents
		FROM rider_charges WHERE entry_date IN (` + placeholders(len(dates)) + `)
		ORDER BY entry_date, position`
	rows, err := r.db.Query(query, dates...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rider charges: %w", err)
	}
	defer rows.Close()

	riders := make(map[string][]models.RiderCharge)
	for rows.Next() {
		var date, tripType string
		var charge models.RiderCharge
		var cents int64
		if err := rows.Scan(&date, &charge.MemberID, &tripType, &charge.Units, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan rider charge: %w", err)
		}
		charge.TripType = models.DayType(tripType)
		charge.Charge = decimal.Decimal64p2(cents)
		riders[date] = append(riders[date], charge)
	}
	return riders, rows.Err()
}

func scanEntry(row rowScanner) (*models.DayEntry, error) {
	var e models.DayEntry
	var dayType string
	var dayTotal, total int64
	err := row.Scan(&e.Date, &e.DriverID, &dayType, &dayTotal, &total, &e.Notes, &e.Revision, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.DayType = models.DayType(dayType)
	e.DayTotalUsed = decimal.Decimal64p2(dayTotal)
	e.TotalAmount = decimal.Decimal64p2(total)
	return &e, nil
}

func placeholders(n int) string {
	s := "?"
	for i := 1; i < n; i++ {
		s += ", ?"
	}
	return s
}
