package service

import (
	"context"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/policy"
	"github.com/feedback-api/internal/repository"
)

// RecentLimit - сколько последних отзывов показывается на дашборде
const RecentLimit = 5

// ManagerDashboard - сводка по команде и написанным отзывам
type ManagerDashboard struct {
	Team   []domain.User
	Stats  domain.FeedbackStats
	Recent []FeedbackView
}

// EmployeeDashboard - сводка по полученным отзывам
type EmployeeDashboard struct {
	Stats  domain.FeedbackStats
	Recent []FeedbackView
}

// DashboardService определяет агрегаты для главных экранов
type DashboardService interface {
	Manager(ctx context.Context, caller *domain.User) (*ManagerDashboard, error)
	Employee(ctx context.Context, caller *domain.User) (*EmployeeDashboard, error)
}

type dashboardService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
	views        viewBuilder
}

// NewDashboardService создаёт новый экземпляр сервиса
func NewDashboardService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) DashboardService {
	return &dashboardService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		views:        viewBuilder{userRepo: userRepo},
	}
}

func (s *dashboardService) Manager(ctx context.Context, caller *domain.User) (*ManagerDashboard, error) {
	if err := policy.RequireManager(caller); err != nil {
		return nil, err
	}

	team, err := s.userRepo.ListDirectReports(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	given, err := s.feedbackRepo.ListByManager(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.views.many(ctx, caller, mostRecent(given))
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		Team:   team,
		Stats:  ComputeStats(given, false),
		Recent: recent,
	}, nil
}

func (s *dashboardService) Employee(ctx context.Context, caller *domain.User) (*EmployeeDashboard, error) {
	if err := policy.RequireEmployee(caller); err != nil {
		return nil, err
	}

	received, err := s.feedbackRepo.ListByEmployee(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.views.many(ctx, caller, mostRecent(received))
	if err != nil {
		return nil, err
	}

	return &EmployeeDashboard{
		Stats:  ComputeStats(received, true),
		Recent: recent,
	}, nil
}

// mostRecent рассчитывает на порядок created_at DESC из хранилища
func mostRecent(items []domain.Feedback) []domain.Feedback {
	if len(items) > RecentLimit {
		return items[:RecentLimit]
	}
	return items
}

// ComputeStats считает агрегаты по уже полученному набору отзывов.
// Непрочитанные считаются только для представления адресата, иначе 0.
func ComputeStats(items []domain.Feedback, countUnacknowledged bool) domain.FeedbackStats {
	stats := domain.FeedbackStats{Total: len(items)}
	for _, item := range items {
		switch item.Sentiment {
		case domain.SentimentPositive:
			stats.Positive++
		case domain.SentimentNeutral:
			stats.Neutral++
		case domain.SentimentNegative:
			stats.Negative++
		}
		if countUnacknowledged && !item.Acknowledged {
			stats.Unacknowledged++
		}
	}
	return stats
}
