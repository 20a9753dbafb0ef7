//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"raja-digital/internal/model"
	"raja-digital/internal/repository"
	"raja-digital/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=raja password=raja dbname=raja_test sslmode=disable TimeZone=Asia/Jakarta"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot connect to test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupDriver creates a uniquely named driver and returns a cleanup func.
func setupDriver(t *testing.T, category string) (*model.Driver, func()) {
	t.Helper()
	ctx := context.Background()

	d := &model.Driver{
		DriverID: fmt.Sprintf("it%d", time.Now().UnixNano()),
		Name:     "Integration Driver",
		Plate:    "B 9999 IT",
		Category: category,
		Status:   model.DriverActive,
	}
	if err := testDB.WithContext(ctx).Create(d).Error; err != nil {
		t.Fatalf("create driver: %v", err)
	}

	cleanup := func() {
		testDB.Exec("DELETE FROM audit_log WHERE driver_id = ?", d.DriverID)
		testDB.Exec("DELETE FROM driver_absences WHERE driver_id = ?", d.DriverID)
		testDB.Exec("DELETE FROM ritase WHERE driver_id = ?", d.DriverID)
		testDB.Exec("DELETE FROM sij_transactions WHERE driver_id = ?", d.DriverID)
		testDB.Exec("DELETE FROM drivers WHERE driver_id = ?", d.DriverID)
	}
	return d, cleanup
}

// ═══════════════════════════════════════════════════════════
// Audit log
// ═══════════════════════════════════════════════════════════

func TestAudit_MismatchLifecycle(t *testing.T) {
	d, cleanup := setupDriver(t, model.CategoryStandar)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	// trip first: mismatch
	if err := repo.Audit.MarkTrip(ctx, "2024-01-02", d.DriverID); err != nil {
		t.Fatalf("MarkTrip: %v", err)
	}
	if err := repo.Driver.RefreshMismatchCount(ctx, d.DriverID); err != nil {
		t.Fatalf("RefreshMismatchCount: %v", err)
	}
	logs, _ := repo.Audit.List(ctx, repository.AuditFilter{Search: d.DriverID})
	if len(logs) != 1 || !logs[0].Mismatch {
		t.Fatalf("expected one mismatched row, got %+v", logs)
	}
	got, _ := repo.Driver.GetByID(ctx, d.DriverID)
	if got.MismatchCount != 1 {
		t.Errorf("mismatch_count: want 1, got %d", got.MismatchCount)
	}

	// permit later the same day clears it
	if err := repo.Audit.MarkSIJ(ctx, "2024-01-02", d.DriverID); err != nil {
		t.Fatalf("MarkSIJ: %v", err)
	}
	_ = repo.Driver.RefreshMismatchCount(ctx, d.DriverID)
	logs, _ = repo.Audit.List(ctx, repository.AuditFilter{Search: d.DriverID})
	if len(logs) != 1 || logs[0].Mismatch || !logs[0].HasSIJ || !logs[0].HasTrip {
		t.Fatalf("expected reconciled row, got %+v", logs)
	}
	got, _ = repo.Driver.GetByID(ctx, d.DriverID)
	if got.MismatchCount != 0 {
		t.Errorf("mismatch_count: want 0, got %d", got.MismatchCount)
	}
}

// ═══════════════════════════════════════════════════════════
// Absences
// ═══════════════════════════════════════════════════════════

func TestAbsence_UpsertOverwrites(t *testing.T) {
	d, cleanup := setupDriver(t, model.CategoryStandar)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	_ = repo.Absence.Upsert(ctx, d.DriverID, "2024-01-03", "SAKIT")
	if err := repo.Absence.Upsert(ctx, d.DriverID, "2024-01-03", "IZIN"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	list, err := repo.Absence.ListRange(ctx, "2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	var found []model.DriverAbsence
	for _, a := range list {
		if a.DriverID == d.DriverID {
			found = append(found, a)
		}
	}
	if len(found) != 1 || found[0].Reason != "IZIN" {
		t.Fatalf("expected single IZIN row, got %+v", found)
	}

	_ = repo.Absence.Delete(ctx, d.DriverID, "2024-01-03")
	list, _ = repo.Absence.ListRange(ctx, "2024-01-03", "2024-01-03")
	for _, a := range list {
		if a.DriverID == d.DriverID {
			t.Fatalf("absence should be deleted, got %+v", a)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Weekly counts and revenue
// ═══════════════════════════════════════════════════════════

func TestSIJ_CountsAndRevenue(t *testing.T) {
	d, cleanup := setupDriver(t, model.CategoryPremium)
	defer cleanup()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	mk := func(id, date, tm, status string) {
		err := repo.SIJ.Create(ctx, &model.SIJTransaction{
			TransactionID: id, DriverID: d.DriverID, DriverName: d.Name,
			Category: model.CategoryPremium, Date: date, Time: tm, Sheets: 5,
			Amount: 60000, QRISRef: "Q", AdminID: "admin1", AdminName: "Admin",
			Shift: model.Shift1, Status: status,
		})
		if err != nil {
			t.Fatalf("create sij %s: %v", id, err)
		}
	}
	mk(d.DriverID+"a", "2024-01-01", "08:10:00", model.SIJActive)
	mk(d.DriverID+"b", "2024-01-01", "08:40:00", model.SIJVoid)
	mk(d.DriverID+"c", "2024-01-03", "09:00:00", model.SIJActive)

	counts, err := repo.SIJ.CountActiveByDriverDate(ctx, "2024-01-01", "2024-01-07")
	if err != nil {
		t.Fatalf("CountActiveByDriverDate: %v", err)
	}
	mine := map[string]int{}
	for _, c := range counts {
		if c.DriverID == d.DriverID {
			mine[c.Date] = c.Count
		}
	}
	if mine["2024-01-01"] != 1 || mine["2024-01-03"] != 1 {
		t.Errorf("void permits must not count: %+v", mine)
	}

	exists, _ := repo.SIJ.ExistsActive(ctx, d.DriverID, "2024-01-01")
	if !exists {
		t.Error("ExistsActive should see the active permit")
	}

	withPlate, err := repo.SIJ.GetWithPlate(ctx, d.DriverID+"a")
	if err != nil || withPlate.Plate != "B 9999 IT" {
		t.Errorf("GetWithPlate: %v %+v", err, withPlate)
	}
}
