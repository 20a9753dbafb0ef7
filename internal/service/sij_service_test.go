package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
)

var adminSession = &dto.Session{UserID: "admin1", Name: "Admin Satu", Role: model.RoleAdmin, Shift: model.Shift1}

func setupTestSIJService(t *testing.T) (SIJService, *mockStore, *mockCache) {
	t.Helper()
	store := newMockStore()
	store.addDriver("D001", "Budi", model.CategoryPremium, model.DriverActive)
	store.addDriver("D002", "Sari", model.CategoryStandar, model.DriverActive)
	store.addDriver("D003", "Joko", model.CategoryStandar, model.DriverSuspend)

	cache := newMockCache()
	wc := newWeeklyCache(cache, 30*time.Second, nopLogger())
	svc := NewSIJService(testBusinessConfig(), store.repo(), wc, testClock(), nopLogger())

	prev := randSuffix
	randSuffix = func() int { return 123 }
	t.Cleanup(func() { randSuffix = prev })

	// Monday 2024-01-08 09:15 WIB
	freezeClock(t, time.Date(2024, 1, 8, 9, 15, 0, 0, jakarta))
	return svc, store, cache
}

func TestSIJCreate_Success(t *testing.T) {
	svc, store, cache := setupTestSIJService(t)
	cache.data["weekly:2024-01-08:2024-01-14"] = []byte(`{}`)

	tx, err := svc.Create(context.Background(), adminSession, &dto.CreateSIJRequest{DriverID: "D001", QRISRef: "QR-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TransactionID != "D00120240108123" {
		t.Errorf("unexpected id %s", tx.TransactionID)
	}
	if tx.Amount != 60000 || tx.Category != model.CategoryPremium {
		t.Errorf("premium price expected, got %d %s", tx.Amount, tx.Category)
	}
	if tx.Sheets != 5 {
		t.Errorf("default sheets 5 expected, got %d", tx.Sheets)
	}
	if tx.Date != "2024-01-08" || tx.Time != "09:15:00" || tx.Shift != model.Shift1 {
		t.Errorf("unexpected date/time/shift: %s %s %s", tx.Date, tx.Time, tx.Shift)
	}
	if tx.AdminID != "admin1" || tx.AdminName != "Admin Satu" {
		t.Errorf("admin not stamped: %+v", tx)
	}

	if store.drivers["D001"].TotalSIJMonth != 1 {
		t.Error("total_sij_month should be incremented")
	}
	a := store.audit[repositoryKey{"D001", "2024-01-08"}]
	if a == nil || !a.HasSIJ || a.Mismatch {
		t.Errorf("audit row should mark has_sij, got %+v", a)
	}
	if _, ok := cache.data["weekly:2024-01-08:2024-01-14"]; ok {
		t.Error("weekly cache of the permit's week should be evicted")
	}
}

func TestSIJCreate_DuplicateSameDay(t *testing.T) {
	svc, _, _ := setupTestSIJService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"})
	if !errors.Is(err, ErrSIJDuplicate) {
		t.Fatalf("expected ErrSIJDuplicate, got %v", err)
	}
	if !strings.Contains(err.Error(), "Sari") || !strings.Contains(err.Error(), "2024-01-08") {
		t.Errorf("message should name driver and date: %s", err.Error())
	}
}

func TestSIJCreate_DriverRules(t *testing.T) {
	svc, _, _ := setupTestSIJService(t)
	ctx := context.Background()

	for _, id := range []string{"D003", "NOPE"} {
		_, err := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: id, QRISRef: "Q"})
		if !errors.Is(err, ErrDriverInactive) {
			t.Errorf("%s: expected ErrDriverInactive, got %v", id, err)
		}
	}
}

func TestSIJCreate_DateWindow(t *testing.T) {
	svc, _, _ := setupTestSIJService(t)
	ctx := context.Background()

	cases := []struct {
		date string
		want error
	}{
		{"2024-01-07", ErrSIJDateRange},
		{"2024-01-16", ErrSIJDateRange},
		{"08-01-2024", ErrSIJDateFormat},
		{"2024-01-15", nil},
	}
	for _, c := range cases {
		_, err := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q", Date: c.date})
		if c.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.date, err)
			}
			continue
		}
		if !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.date, c.want, err)
		}
	}
}

func TestSIJCreate_RetriesIDCollision(t *testing.T) {
	svc, store, _ := setupTestSIJService(t)
	store.sij["D00220240108123"] = &model.SIJTransaction{TransactionID: "D00220240108123", DriverID: "D002", Date: "2024-01-01", Status: model.SIJVoid}

	suffixes := []int{123, 456}
	randSuffix = func() int {
		n := suffixes[0]
		suffixes = suffixes[1:]
		return n
	}

	tx, err := svc.Create(context.Background(), adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.TransactionID != "D00220240108456" {
		t.Errorf("expected regenerated id, got %s", tx.TransactionID)
	}
}

func TestSIJVoid(t *testing.T) {
	svc, store, _ := setupTestSIJService(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// a trip on the same day; voiding the permit turns it into a mismatch
	_ = store.repo().Audit.MarkTrip(ctx, "2024-01-08", "D002")

	if err := svc.Void(ctx, adminSession, tx.TransactionID); err != nil {
		t.Fatalf("void: %v", err)
	}
	if store.sij[tx.TransactionID].Status != model.SIJVoid {
		t.Error("status should be void")
	}
	a := store.audit[repositoryKey{"D002", "2024-01-08"}]
	if a.HasSIJ || !a.Mismatch {
		t.Errorf("audit should be cleared into mismatch, got %+v", a)
	}
	if store.drivers["D002"].MismatchCount != 1 {
		t.Errorf("mismatch_count should be 1, got %d", store.drivers["D002"].MismatchCount)
	}

	if err := svc.Void(ctx, adminSession, tx.TransactionID); !errors.Is(err, ErrSIJAlreadyVoid) {
		t.Errorf("expected ErrSIJAlreadyVoid, got %v", err)
	}
}

func TestSIJVoid_Expired(t *testing.T) {
	svc, store, _ := setupTestSIJService(t)
	store.sij["OLD"] = &model.SIJTransaction{
		TransactionID: "OLD", DriverID: "D002", Date: "2024-01-07", Status: model.SIJActive,
		CreatedModel: model.CreatedModel{CreatedAt: time.Date(2024, 1, 7, 9, 0, 0, 0, jakarta)},
	}

	err := svc.Void(context.Background(), adminSession, "OLD")
	if !errors.Is(err, ErrVoidExpired) {
		t.Errorf("expected ErrVoidExpired after 24h15m, got %v", err)
	}
	if err := svc.Void(context.Background(), adminSession, "NOPE"); !errors.Is(err, ErrSIJNotFound) {
		t.Errorf("expected ErrSIJNotFound, got %v", err)
	}
}

func TestSIJReceipt(t *testing.T) {
	svc, _, _ := setupTestSIJService(t)
	ctx := context.Background()

	tx, _ := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D001", QRISRef: "QR-9", Sheets: 3})
	rt, out, err := svc.Receipt(ctx, tx.TransactionID)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if rt.Plate != "B D001" {
		t.Errorf("plate should be joined from driver, got %q", rt.Plate)
	}
	if n := strings.Count(out.HTML, `class="ticket"`); n != 3 {
		t.Errorf("expected 3 tickets, got %d", n)
	}
	if !strings.Contains(string(out.Thermal), "60.000") {
		t.Error("thermal should print the stored amount")
	}
}

func TestSIJUpdate_ChangeDriverRefreshesDenormalised(t *testing.T) {
	svc, store, _ := setupTestSIJService(t)
	ctx := context.Background()

	tx, _ := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"})
	updated, err := svc.Update(ctx, tx.TransactionID, &dto.UpdateSIJRequest{DriverID: strPtr("D001")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DriverName != "Budi" || updated.Category != model.CategoryPremium {
		t.Errorf("name/category should follow the new driver: %+v", updated)
	}
	if store.audit[repositoryKey{"D002", "2024-01-08"}].HasSIJ {
		t.Error("old driver's audit row should be cleared")
	}
	if !store.audit[repositoryKey{"D001", "2024-01-08"}].HasSIJ {
		t.Error("new driver's audit row should be marked")
	}

	if _, err := svc.Update(ctx, tx.TransactionID, &dto.UpdateSIJRequest{DriverID: strPtr("NOPE")}); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestSIJDelete(t *testing.T) {
	svc, store, _ := setupTestSIJService(t)
	ctx := context.Background()

	tx, _ := svc.Create(ctx, adminSession, &dto.CreateSIJRequest{DriverID: "D002", QRISRef: "Q"})
	if err := svc.Delete(ctx, tx.TransactionID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store.sij[tx.TransactionID]; ok {
		t.Error("transaction should be gone")
	}
	if err := svc.Delete(ctx, tx.TransactionID); !errors.Is(err, ErrSIJNotFound) {
		t.Errorf("expected ErrSIJNotFound, got %v", err)
	}
}

func TestSIJPrice(t *testing.T) {
	svc, _, _ := setupTestSIJService(t)

	p, err := svc.Price("Premium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Price != 60000 || p.Label != "Rp 60.000" || p.Category != "premium" {
		t.Errorf("unexpected price: %+v", p)
	}
	if _, err := svc.Price("vip"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
