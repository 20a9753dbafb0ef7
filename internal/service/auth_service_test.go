package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"raja-digital/config"
	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/pkg/jwt"
)

func setupTestAuthService(t *testing.T, blacklist TokenBlacklist) (AuthService, *mockStore, *jwt.Manager) {
	t.Helper()
	store := newMockStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	shift := model.Shift2
	store.users["admin1"] = &model.User{
		UserID:       "admin1",
		Name:         "Admin Satu",
		Role:         model.RoleAdmin,
		Shift:        &shift,
		Email:        "admin1@raja.id",
		PasswordHash: string(hash),
	}
	mgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-at-least-32-characters!!", TokenTTL: 24 * time.Hour})
	return NewAuthService(store.repo(), mgr, blacklist, testClock(), nopLogger()), store, mgr
}

func TestLogin_Success(t *testing.T) {
	svc, _, mgr := setupTestAuthService(t, nil)
	freezeClock(t, time.Date(2024, 1, 8, 8, 30, 0, 0, jakarta))

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin1@raja.id", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token")
	}
	if resp.ExpiresIn != 86400 {
		t.Errorf("expected expires_in 86400, got %d", resp.ExpiresIn)
	}
	// detected from the clock, not the stored Shift2
	if resp.User.Shift != model.Shift1 {
		t.Errorf("expected Shift1 at 08:30, got %s", resp.User.Shift)
	}

	claims, err := mgr.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("token should parse: %v", err)
	}
	if claims.UserID != "admin1" || claims.Role != model.RoleAdmin || claims.Shift != model.Shift1 {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" || claims.ID != resp.User.TokenID {
		t.Errorf("session should carry the token id")
	}
}

func TestLogin_EveningIsShift2(t *testing.T) {
	svc, _, _ := setupTestAuthService(t, nil)
	freezeClock(t, time.Date(2024, 1, 8, 17, 0, 0, 0, jakarta))

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin1@raja.id", Password: "admin123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.Shift != model.Shift2 {
		t.Errorf("expected Shift2 at 17:00, got %s", resp.User.Shift)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := setupTestAuthService(t, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin1@raja.id", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService(t, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@raja.id", Password: "admin123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_BlacklistsRemainingLifetime(t *testing.T) {
	bl := &mockBlacklist{}
	svc, _, _ := setupTestAuthService(t, bl)

	sess := &dto.Session{UserID: "admin1", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := svc.Logout(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bl.jti != "jti-1" {
		t.Errorf("expected jti-1 blacklisted, got %q", bl.jti)
	}
	if bl.ttl <= 0 || bl.ttl > time.Hour {
		t.Errorf("ttl should be the remaining lifetime, got %v", bl.ttl)
	}
}

func TestLogout_WithoutBlacklist(t *testing.T) {
	svc, _, _ := setupTestAuthService(t, nil)
	sess := &dto.Session{UserID: "admin1", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := svc.Logout(context.Background(), sess); err != nil {
		t.Errorf("logout without redis should succeed, got %v", err)
	}
}

func TestDetectShift(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{6, model.Shift2}, {7, model.Shift1}, {12, model.Shift1},
		{16, model.Shift1}, {17, model.Shift2}, {23, model.Shift2}, {0, model.Shift2},
	}
	for _, c := range cases {
		got := DetectShift(time.Date(2024, 1, 1, c.hour, 59, 0, 0, jakarta))
		if got != c.want {
			t.Errorf("hour %d: want %s, got %s", c.hour, c.want, got)
		}
	}
}
