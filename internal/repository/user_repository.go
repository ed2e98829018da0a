package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/feedback-api/internal/database"
	"github.com/feedback-api/internal/domain"
	"gorm.io/gorm"
)

// UserRepository - хранилище пользователей и связей руководитель -> подчинённый
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListDirectReports(ctx context.Context, managerID int64) ([]domain.User, error)
	ListManagers(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создаёт новый экземпляр репозитория
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	// Руководитель уже существует, ассоциацию не сохраняем
	if err := r.db.WithContext(ctx).Omit("Manager").Create(user).Error; err != nil {
		err = database.MapError(err)
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Manager").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Manager").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ListDirectReports(ctx context.Context, managerID int64) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("manager_id = ?", managerID).
		Order("name ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list direct reports: %w", err)
	}
	return users, nil
}

func (r *userRepository) ListManagers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.WithContext(ctx).
		Where("role = ?", domain.RoleManager).
		Order("name ASC, id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return users, nil
}
