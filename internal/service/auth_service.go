package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raja-digital/internal/dto"
	"raja-digital/internal/repository"
	"raja-digital/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("Email atau password salah")
	ErrUserNotFound       = errors.New("User tidak ditemukan")
)

// AuthService authentication
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sess *dto.Session) error
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	clock     Clock
	logger    *zap.Logger
}

// NewAuthService creates an AuthService. blacklist may be nil, in which
// case logout is client-side only.
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	clock Clock,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		clock:     clock,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. look up by email
	user, err := s.repo.User.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("get user by email failed", zap.Error(err))
		return nil, err
	}

	// 2. bcrypt
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. the session shift follows the wall clock at login, not the stored default
	sess := dto.Session{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		Shift:  DetectShift(s.clock.Now()),
		Name:   user.Name,
	}

	// 4. sign
	token, claims, err := s.jwtMgr.GenerateToken(jwt.Identity{
		UserID: sess.UserID,
		Email:  sess.Email,
		Role:   sess.Role,
		Shift:  sess.Shift,
		Name:   sess.Name,
	})
	if err != nil {
		s.logger.Error("generate token failed", zap.Error(err))
		return nil, err
	}
	sess.TokenID = claims.ID
	sess.ExpiresAt = claims.ExpiresAt.Time

	s.logger.Info("user logged in",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
		zap.String("shift", sess.Shift),
	)

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(s.jwtMgr.TTL().Seconds()),
		User:      sess,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sess *dto.Session) error {
	if s.blacklist == nil || sess == nil || sess.TokenID == "" {
		return nil
	}
	ttl := sess.ExpiresAt.Sub(nowFunc())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, sess.TokenID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("user logged out", zap.String("user_id", sess.UserID))
	return nil
}
