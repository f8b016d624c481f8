package database_test

import (
	"path/filepath"
	"testing"

	"github.com/strongo/decimal"

	"carpool/internal/database"
	"carpool/internal/models"
	"carpool/internal/repository"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"groups", "members", "entries", "rider_charges", "settings", "migrations"} {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s missing after migrations: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}

func TestMemberRepositoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewMemberRepository(db)

	created, err := repo.CreateMember("Alice")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated member ID")
	}
	if !created.Active {
		t.Fatal("new members should be active")
	}

	if err := repo.UpdateRates(created.ID, decimal.NewDecimal64p2(20, 0), decimal.NewDecimal64p2(35, 50)); err != nil {
		t.Fatalf("failed to update rates: %v", err)
	}

	got, err := repo.GetMemberByID(created.ID)
	if err != nil {
		t.Fatalf("failed to get member: %v", err)
	}
	if got == nil {
		t.Fatal("expected member, got nil")
	}
	if got.Name != "Alice" {
		t.Errorf("expected name Alice, got %q", got.Name)
	}
	if got.OneWayTotal != decimal.NewDecimal64p2(20, 0) || got.TwoWayTotal != decimal.NewDecimal64p2(35, 50) {
		t.Errorf("unexpected rates: one_way=%s two_way=%s", got.OneWayTotal, got.TwoWayTotal)
	}

	if err := repo.Deactivate(created.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	// Deactivation is a soft delete: the member stays listed with
	// Active=false so past entries keep resolving
	members, err := repo.ListMembers()
	if err != nil {
		t.Fatalf("failed to list members: %v", err)
	}
	found := false
	for _, m := range members {
		if m.ID == created.ID {
			found = true
			if m.Active {
				t.Error("deactivated member still marked active")
			}
		}
	}
	if !found {
		t.Error("deactivated member dropped from the list")
	}

	missing, err := repo.GetMemberByID("no-such-id")
	if err != nil {
		t.Fatalf("unexpected error for missing member: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing member")
	}
}

func TestEntryReplaceSupersedesPriorSave(t *testing.T) {
	db := setupTestDB(t)
	memberRepo := repository.NewMemberRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	alice, err := memberRepo.CreateMember("Alice")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	bob, err := memberRepo.CreateMember("Bob")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	entry := &models.DayEntry{
		Date:         "2026-03-02",
		DriverID:     alice.ID,
		DayType:      models.DayTypeTwoWay,
		DayTotalUsed: decimal.NewDecimal64p2(30, 0),
		TotalAmount:  decimal.NewDecimal64p2(30, 0),
		Riders: []models.RiderCharge{
			{MemberID: alice.ID, TripType: models.DayTypeTwoWay, Units: 2, Charge: decimal.NewDecimal64p2(15, 0)},
			{MemberID: bob.ID, TripType: models.DayTypeTwoWay, Units: 2, Charge: decimal.NewDecimal64p2(15, 0)},
		},
	}

	saved, err := entryRepo.ReplaceEntry(entry)
	if err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}
	if saved.Revision != 1 {
		t.Errorf("expected revision 1 on first save, got %d", saved.Revision)
	}

	// Second save for the same date fully replaces the first
	entry.Riders = entry.Riders[:1]
	entry.Riders[0].Charge = decimal.NewDecimal64p2(30, 0)
	saved, err = entryRepo.ReplaceEntry(entry)
	if err != nil {
		t.Fatalf("failed to replace entry: %v", err)
	}
	if saved.Revision != 2 {
		t.Errorf("expected revision 2 after replace, got %d", saved.Revision)
	}

	var entryCount, chargeCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries WHERE date = ?", entry.Date).Scan(&entryCount); err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	if entryCount != 1 {
		t.Errorf("expected exactly one entry row, got %d", entryCount)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM rider_charges WHERE entry_date = ?", entry.Date).Scan(&chargeCount); err != nil {
		t.Fatalf("failed to count charges: %v", err)
	}
	if chargeCount != 1 {
		t.Errorf("expected stale charges to be gone, got %d rows", chargeCount)
	}

	got, err := entryRepo.GetEntryByDate(entry.Date)
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if len(got.Riders) != 1 || got.Riders[0].Charge != decimal.NewDecimal64p2(30, 0) {
		t.Errorf("unexpected riders after replace: %+v", got.Riders)
	}
}

func TestListEntriesByMonth(t *testing.T) {
	db := setupTestDB(t)
	memberRepo := repository.NewMemberRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	alice, err := memberRepo.CreateMember("Alice")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	for _, date := range []string{"2026-03-02", "2026-03-31", "2026-04-01"} {
		entry := &models.DayEntry{
			Date:         date,
			DriverID:     alice.ID,
			DayType:      models.DayTypeOneWay,
			DayTotalUsed: decimal.NewDecimal64p2(10, 0),
			TotalAmount:  decimal.NewDecimal64p2(10, 0),
			Riders: []models.RiderCharge{
				{MemberID: alice.ID, TripType: models.DayTypeOneWay, Units: 1, Charge: decimal.NewDecimal64p2(10, 0)},
			},
		}
		if _, err := entryRepo.ReplaceEntry(entry); err != nil {
			t.Fatalf("failed to save entry %s: %v", date, err)
		}
	}

	entries, err := entryRepo.ListEntriesByMonth("2026-03")
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in March, got %d", len(entries))
	}
	if entries[0].Date != "2026-03-02" || entries[1].Date != "2026-03-31" {
		t.Errorf("entries out of order: %s, %s", entries[0].Date, entries[1].Date)
	}
	for _, e := range entries {
		if len(e.Riders) != 1 {
			t.Errorf("entry %s missing riders", e.Date)
		}
	}

	months, err := entryRepo.ListMonths()
	if err != nil {
		t.Fatalf("failed to list months: %v", err)
	}
	if len(months) != 2 || months[0] != "2026-03" || months[1] != "2026-04" {
		t.Errorf("unexpected months: %v", months)
	}
}

func TestDeleteEntryRemovesCharges(t *testing.T) {
	db := setupTestDB(t)
	memberRepo := repository.NewMemberRepository(db)
	entryRepo := repository.NewEntryRepository(db)

	alice, err := memberRepo.CreateMember("Alice")
	if err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	entry := &models.DayEntry{
		Date:         "2026-03-02",
		DriverID:     alice.ID,
		DayType:      models.DayTypeOneWay,
		DayTotalUsed: decimal.NewDecimal64p2(10, 0),
		TotalAmount:  decimal.NewDecimal64p2(10, 0),
		Riders: []models.RiderCharge{
			{MemberID: alice.ID, TripType: models.DayTypeOneWay, Units: 1, Charge: decimal.NewDecimal64p2(10, 0)},
		},
	}
	if _, err := entryRepo.ReplaceEntry(entry); err != nil {
		t.Fatalf("failed to save entry: %v", err)
	}

	if err := entryRepo.DeleteEntry(entry.Date); err != nil {
		t.Fatalf("failed to delete entry: %v", err)
	}

	got, err := entryRepo.GetEntryByDate(entry.Date)
	if err != nil {
		t.Fatalf("unexpected error after delete: %v", err)
	}
	if got != nil {
		t.Error("expected entry to be gone")
	}

	var chargeCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM rider_charges WHERE entry_date = ?", entry.Date).Scan(&chargeCount); err != nil {
		t.Fatalf("failed to count charges: %v", err)
	}
	if chargeCount != 0 {
		t.Errorf("expected charges to be gone, got %d rows", chargeCount)
	}

	// Deleting a missing entry reports it
	if err := entryRepo.DeleteEntry("2026-03-03"); err == nil {
		t.Error("expected an error deleting a missing entry")
	}
}

func TestGroupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGroupRepository(db)

	count, err := repo.CountGroups()
	if err != nil {
		t.Fatalf("failed to count groups: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty groups table, got %d", count)
	}

	created, err := repo.CreateGroup("morning-carpool", "hash")
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	byName, err := repo.GetGroupByName("morning-carpool")
	if err != nil {
		t.Fatalf("failed to get group by name: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("expected group %d, got %+v", created.ID, byName)
	}

	byID, err := repo.GetGroupByID(created.ID)
	if err != nil {
		t.Fatalf("failed to get group by id: %v", err)
	}
	if byID == nil || byID.Name != "morning-carpool" {
		t.Fatalf("unexpected group: %+v", byID)
	}
}

func TestSettingsRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewSettingsRepository(db)

	val, err := repo.GetSetting(repository.SettingNotifyRecipients)
	if err != nil {
		t.Fatalf("unexpected error for missing setting: %v", err)
	}
	if val != "" {
		t.Fatalf("expected empty value for missing setting, got %q", val)
	}

	if err := repo.SetSetting(repository.SettingNotifyRecipients, "a@example.com, b@example.com"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	// Upsert overwrites
	if err := repo.SetSetting(repository.SettingNotifyRecipients, "a@example.com,b@example.com"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}

	recipients, err := repo.NotifyRecipients()
	if err != nil {
		t.Fatalf("failed to load recipients: %v", err)
	}
	if len(recipients) != 2 || recipients[0] != "a@example.com" || recipients[1] != "b@example.com" {
		t.Errorf("unexpected recipients: %v", recipients)
	}
}
