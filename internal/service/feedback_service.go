package service

import (
	"context"
	"errors"
	"strings"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/policy"
	"github.com/feedback-api/internal/repository"
	"gorm.io/datatypes"
)

// FeedbackService определяет бизнес-логику отзывов
type FeedbackService interface {
	Create(ctx context.Context, caller *domain.User, req *dto.CreateFeedbackRequest) (*FeedbackView, error)
	List(ctx context.Context, caller *domain.User) ([]FeedbackView, error)
	Received(ctx context.Context, caller *domain.User) ([]FeedbackView, error)
	ListForEmployee(ctx context.Context, caller *domain.User, employeeID int64) ([]FeedbackView, error)
	Get(ctx context.Context, caller *domain.User, id int64) (*FeedbackView, error)
	Update(ctx context.Context, caller *domain.User, id int64, req *dto.UpdateFeedbackRequest) (*FeedbackView, error)
	Acknowledge(ctx context.Context, caller *domain.User, id int64) (*FeedbackView, error)
	Comment(ctx context.Context, caller *domain.User, id int64, req *dto.CommentRequest) (*FeedbackView, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	userRepo     repository.UserRepository
	views        viewBuilder
}

// NewFeedbackService создаёт новый экземпляр сервиса
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, userRepo repository.UserRepository) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		userRepo:     userRepo,
		views:        viewBuilder{userRepo: userRepo},
	}
}

func (s *feedbackService) Create(ctx context.Context, caller *domain.User, req *dto.CreateFeedbackRequest) (*FeedbackView, error) {
	if err := policy.RequireManager(caller); err != nil {
		return nil, err
	}

	employee, err := s.findEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreateFeedback(caller, employee); err != nil {
		return nil, err
	}

	sentiment, err := domain.ParseSentiment(req.Sentiment)
	if err != nil {
		return nil, err
	}
	strengths := strings.TrimSpace(req.Strengths)
	areas := strings.TrimSpace(req.AreasToImprove)
	if strengths == "" || areas == "" {
		return nil, domain.Invalid("strengths and areas_to_improve must not be empty")
	}

	// Автор всегда вызывающий руководитель, клиент его не передаёт
	feedback := &domain.Feedback{
		EmployeeID:     employee.ID,
		ManagerID:      caller.ID,
		Strengths:      strengths,
		AreasToImprove: areas,
		Sentiment:      sentiment,
		Tags:           datatypes.JSONSlice[string](req.Tags),
		IsAnonymous:    req.IsAnonymous,
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return s.views.one(ctx, caller, feedback)
}

// List возвращает отзывы в зависимости от роли: руководителю - написанные, сотруднику - полученные
func (s *feedbackService) List(ctx context.Context, caller *domain.User) ([]FeedbackView, error) {
	var (
		items []domain.Feedback
		err   error
	)

	switch {
	case caller.IsManager():
		items, err = s.feedbackRepo.ListByManager(ctx, caller.ID)
	case caller.IsEmployee():
		items, err = s.feedbackRepo.ListByEmployee(ctx, caller.ID)
	default:
		return nil, domain.Forbidden("unknown role")
	}
	if err != nil {
		return nil, err
	}

	return s.views.many(ctx, caller, items)
}

// Received возвращает отзывы, адресованные вызывающему
func (s *feedbackService) Received(ctx context.Context, caller *domain.User) ([]FeedbackView, error) {
	items, err := s.feedbackRepo.ListByEmployee(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return s.views.many(ctx, caller, items)
}

func (s *feedbackService) ListForEmployee(ctx context.Context, caller *domain.User, employeeID int64) ([]FeedbackView, error) {
	if err := policy.RequireManager(caller); err != nil {
		return nil, err
	}

	employee, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanListEmployeeFeedback(caller, employee); err != nil {
		return nil, err
	}

	items, err := s.feedbackRepo.ListByEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	return s.views.many(ctx, caller, items)
}

func (s *feedbackService) Get(ctx context.Context, caller *domain.User, id int64) (*FeedbackView, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanReadFeedback(caller, feedback); err != nil {
		return nil, err
	}
	return s.views.one(ctx, caller, feedback)
}

func (s *feedbackService) Update(ctx context.Context, caller *domain.User, id int64, req *dto.UpdateFeedbackRequest) (*FeedbackView, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateFeedback(caller, feedback); err != nil {
		return nil, err
	}

	patch, err := toPatch(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.feedbackRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return s.views.one(ctx, caller, updated)
}

func (s *feedbackService) Acknowledge(ctx context.Context, caller *domain.User, id int64) (*FeedbackView, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRespondToFeedback(caller, feedback); err != nil {
		return nil, err
	}

	acknowledged, err := s.feedbackRepo.Acknowledge(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.views.one(ctx, caller, acknowledged)
}

func (s *feedbackService) Comment(ctx context.Context, caller *domain.User, id int64, req *dto.CommentRequest) (*FeedbackView, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanRespondToFeedback(caller, feedback); err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, domain.Invalid("comment must not be empty")
	}

	commented, err := s.feedbackRepo.SetEmployeeComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}
	return s.views.one(ctx, caller, commented)
}

// findEmployee превращает промах по пользователю в ErrEmployeeNotFound
func (s *feedbackService) findEmployee(ctx context.Context, id int64) (*domain.User, error) {
	employee, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrEmployeeNotFound
	}
	return employee, err
}

func toPatch(req *dto.UpdateFeedbackRequest) (domain.FeedbackPatch, error) {
	patch := domain.FeedbackPatch{
		Tags:        req.Tags,
		IsAnonymous: req.IsAnonymous,
	}

	if req.Strengths != nil {
		strengths := strings.TrimSpace(*req.Strengths)
		if strengths == "" {
			return patch, domain.Invalid("strengths must not be empty")
		}
		patch.Strengths = &strengths
	}
	if req.AreasToImprove != nil {
		areas := strings.TrimSpace(*req.AreasToImprove)
		if areas == "" {
			return patch, domain.Invalid("areas_to_improve must not be empty")
		}
		patch.AreasToImprove = &areas
	}
	if req.Sentiment != nil {
		sentiment, err := domain.ParseSentiment(*req.Sentiment)
		if err != nil {
			return patch, err
		}
		patch.Sentiment = &sentiment
	}

	return patch, nil
}
