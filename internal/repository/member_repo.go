package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strongo/decimal"

	"carpool/internal/database"
	"carpool/internal/models"
)

// MemberRepository handles database operations for group members
type MemberRepository struct {
	db *database.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// CreateMember inserts a new active member with unset rates
func (r *MemberRepository) CreateMember(name string) (*models.Member, error) {
	member := &models.Member{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `INSERT INTO members (id, name, active, one_way_cents, two_way_cents)
		VALUES (?, ?, ?, 0, 0)`
	if _, err := r.db.Exec(query, member.ID, member.Name, true); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// GetMemberByID retrieves a member by ID, nil if absent
func (r *MemberRepository) GetMemberByID(id string) (*models.Member, error) {
	query := `SELECT id, name, active, one_way_cents, two_way_cents, created_at, updated_at
		FROM members WHERE id = ?`
	member, err := scanMember(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers retrieves all members, oldest first. Deactivated members
// are included so past entries keep resolving; callers filter on Active.
func (r *MemberRepository) ListMembers() ([]models.Member, error) {
	query := `SELECT id, name, active, one_way_cents, two_way_cents, created_at, updated_at
		FROM members ORDER BY created_at, id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *member)
	}
	return members, rows.Err()
}

// UpdateRates sets a member's one-way and two-way day totals
func (r *MemberRepository) UpdateRates(id string, oneWay, twoWay decimal.Decimal64p2) error {
	query := `UPDATE members SET one_way_cents = ?, two_way_cents = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	result, err := r.db.Exec(query, int64(oneWay), int64(twoWay), id)
	if err != nil {
		return fmt.Errorf("failed to update rates: %w", err)
	}
	return requireRowAffected(result)
}

// Deactivate soft-deletes a member; rows are never physically removed
func (r *MemberRepository) Deactivate(id string) error {
	query := `UPDATE members SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	result, err := r.db.Exec(query, false, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	return requireRowAffected(result)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	var m models.Member
	var oneWay, twoWay int64
	if err := row.Scan(&m.ID, &m.Name, &m.Active, &oneWay, &twoWay, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.OneWayTotal = decimal.Decimal64p2(oneWay)
	m.TwoWayTotal = decimal.Decimal64p2(twoWay)
	return &m, nil
}

func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
