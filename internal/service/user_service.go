package service

import (
	"context"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/policy"
	"github.com/feedback-api/internal/repository"
)

// UserService определяет чтение профилей и структуры команды
type UserService interface {
	GetByID(ctx context.Context, caller *domain.User, id int64) (*domain.User, error)
	Team(ctx context.Context, caller *domain.User) ([]domain.User, error)
	Managers(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService создаёт новый экземпляр сервиса
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByID(ctx context.Context, caller *domain.User, id int64) (*domain.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadUser(caller, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *userService) Team(ctx context.Context, caller *domain.User) ([]domain.User, error) {
	if err := policy.CanListTeam(caller); err != nil {
		return nil, err
	}
	return s.userRepo.ListDirectReports(ctx, caller.ID)
}

func (s *userService) Managers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListManagers(ctx)
}
