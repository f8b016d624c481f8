package repository

import (
	"database/sql"
	"fmt"

	"carpool/internal/database"
	"carpool/internal/models"
)

// GroupRepository handles the group credential row. A deployment holds a
// single group in practice, but the table allows more.
type GroupRepository struct {
	db *database.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup inserts a group with a pre-hashed passcode
func (r *GroupRepository) CreateGroup(name, passcodeHash string) (*models.Group, error) {
	query := `INSERT INTO groups (name, passcode_hash) VALUES (?, ?)`
	id, err := r.db.ExecReturningID(query, name, passcodeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &models.Group{ID: id, Name: name, PasscodeHash: passcodeHash}, nil
}

// GetGroupByName retrieves a group by name, nil if absent
func (r *GroupRepository) GetGroupByName(name string) (*models.Group, error) {
	query := `SELECT id, name, passcode_hash, created_at FROM groups WHERE name = ?`
	var g models.Group
	err := r.db.QueryRow(query, name).Scan(&g.ID, &g.Name, &g.PasscodeHash, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

// GetGroupByID retrieves a group by ID, nil if absent
func (r *GroupRepository) GetGroupByID(id int64) (*models.Group, error) {
	query := `SELECT id, name, passcode_hash, created_at FROM groups WHERE id = ?`
	var g models.Group
	err := r.db.QueryRow(query, id).Scan(&g.ID, &g.Name, &g.PasscodeHash, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return &g, nil
}

// CountGroups reports how many groups exist (used for first-run bootstrap)
func (r *GroupRepository) CountGroups() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM groups").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return count, nil
}
