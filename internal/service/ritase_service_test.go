package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
)

func setupTestRitaseService(t *testing.T) (RitaseService, *mockStore) {
	t.Helper()
	store := newMockStore()
	store.addDriver("D001", "Budi", model.CategoryStandar, model.DriverActive)
	store.addDriver("D002", "Sari", model.CategoryStandar, model.DriverActive)
	freezeClock(t, time.Date(2024, 1, 8, 19, 5, 0, 0, jakarta))
	return NewRitaseService(store.repo(), newWeeklyCache(nil, 0, nopLogger()), testClock(), nopLogger()), store
}

func TestRitaseCreate_WithoutPermitIsMismatch(t *testing.T) {
	svc, store := setupTestRitaseService(t)

	rt, err := svc.Create(context.Background(), adminSession, &dto.CreateRitaseRequest{DriverID: "D001", Date: "2024-01-08"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.ID == 0 || rt.DriverName != "Budi" {
		t.Errorf("unexpected ritase: %+v", rt)
	}
	if rt.WaktuRitase != "19:05" || rt.Shift != model.Shift2 {
		t.Errorf("time and shift default from the clock: %s %s", rt.WaktuRitase, rt.Shift)
	}

	a := store.audit[repositoryKey{"D001", "2024-01-08"}]
	if a == nil || !a.HasTrip || !a.Mismatch {
		t.Errorf("trip without permit should be a mismatch, got %+v", a)
	}
	if store.drivers["D001"].MismatchCount != 1 {
		t.Errorf("mismatch_count should be refreshed")
	}
}

func TestRitaseCreate_WithPermitIsClean(t *testing.T) {
	svc, store := setupTestRitaseService(t)
	_ = store.repo().Audit.MarkSIJ(context.Background(), "2024-01-08", "D002")

	if _, err := svc.Create(context.Background(), adminSession, &dto.CreateRitaseRequest{DriverID: "D002", Date: "2024-01-08", WaktuRitase: "10:00"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := store.audit[repositoryKey{"D002", "2024-01-08"}]
	if !a.HasTrip || !a.HasSIJ || a.Mismatch {
		t.Errorf("trip with permit is not a mismatch, got %+v", a)
	}
}

func TestRitaseCreate_UnknownDriver(t *testing.T) {
	svc, _ := setupTestRitaseService(t)
	_, err := svc.Create(context.Background(), adminSession, &dto.CreateRitaseRequest{DriverID: "NOPE", Date: "2024-01-08"})
	if !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("expected ErrDriverNotFound, got %v", err)
	}
}

func TestRitaseUpdateDelete(t *testing.T) {
	svc, store := setupTestRitaseService(t)
	ctx := context.Background()

	rt, _ := svc.Create(ctx, adminSession, &dto.CreateRitaseRequest{DriverID: "D001", Date: "2024-01-08"})
	up, err := svc.Update(ctx, rt.ID, &dto.UpdateRitaseRequest{DriverID: strPtr("D002"), Notes: strPtr("koreksi")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.DriverName != "Sari" || up.Notes != "koreksi" {
		t.Errorf("unexpected update: %+v", up)
	}

	if err := svc.Delete(ctx, rt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.ritase) != 0 {
		t.Error("ritase should be deleted")
	}
	if err := svc.Delete(ctx, rt.ID); !errors.Is(err, ErrRitaseNotFound) {
		t.Errorf("expected ErrRitaseNotFound, got %v", err)
	}
}
