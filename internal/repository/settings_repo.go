package repository

import (
	"database/sql"
	"strings"

	"carpool/internal/database"
)

// Setting keys used by the application
const (
	SettingNotifyRecipients = "notify_recipients" // comma-separated email list
	SettingGroupLabel       = "group_label"       // display name shown in notifications
)

// SettingsRepository handles the key/value settings table
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key; missing keys return ""
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT value FROM settings WHERE key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSettings()
	_, err := r.db.Exec(query, key, value)
	return err
}

// NotifyRecipients returns the configured settlement notification
// recipients, empty when none are set
func (r *SettingsRepository) NotifyRecipients() ([]string, error) {
	value, err := r.GetSetting(SettingNotifyRecipients)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	var recipients []string
	for _, addr := range strings.Split(value, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients, nil
}
