package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"raja-digital/internal/dto"
	"raja-digital/internal/model"
	"raja-digital/internal/repository"
)

// ── user errors ──

var (
	ErrInvalidRole  = errors.New("Role tidak valid")
	ErrInvalidShift = errors.New("Shift tidak valid")
	ErrUserExists   = errors.New("User ID atau email sudah digunakan")
	ErrDeleteSelf   = errors.New("Tidak dapat menghapus akun sendiri")
)

// UserService operator accounts, superadmin only
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id, callerID string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func validRole(r string) bool {
	return r == model.RoleAdmin || r == model.RoleSuperAdmin
}

// normalizeShift accepts nil, "" (no default shift) or a known shift.
func normalizeShift(s *string) (*string, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v != model.Shift1 && v != model.Shift2 {
		return nil, ErrInvalidShift
	}
	return &v, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		UserID: u.UserID,
		Name:   u.Name,
		Role:   u.Role,
		Shift:  u.Shift,
		Email:  u.Email,
	}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// 1. field rules
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}
	shift, err := normalizeShift(req.Shift)
	if err != nil {
		return nil, err
	}

	// 2. uniqueness of id and email
	exists, err := s.repo.User.ExistsByIDOrEmail(ctx, req.UserID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	// 3. hash and store
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		UserID:       strings.TrimSpace(req.UserID),
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		Shift:        shift,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && *req.Email != user.Email {
		if other, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil && other.UserID != user.UserID {
			return nil, ErrUserExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Shift != nil {
		shift, err := normalizeShift(req.Shift)
		if err != nil {
			return nil, err
		}
		user.Shift = shift
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		s.logger.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrDeleteSelf
	}
	if _, err := s.repo.User.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("delete user failed", zap.String("user_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", callerID))
	return nil
}
