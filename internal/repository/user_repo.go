package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"raja-digital/internal/model"
)

// UserRepository user data access
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByIDOrEmail(ctx context.Context, id, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "user_id = ?", id)
}

// GetByEmail matches case-insensitively; emails are stored as entered.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", strings.TrimSpace(email))
}

func (r *userRepo) first(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ExistsByIDOrEmail(ctx context.Context, id, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ? OR LOWER(email) = LOWER(?)", id, email).
		Count(&n).Error
	return n > 0, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.User{}).Error
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	// superadmin first, then admins by shift
	err := r.db.WithContext(ctx).
		Order("role DESC, shift ASC NULLS FIRST, name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}
