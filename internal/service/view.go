package service

import (
	"context"
	"errors"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/repository"
)

// FeedbackView - отзыв вместе с участниками, как его видит конкретный пользователь.
// Manager равен nil, если отзыв анонимен для зрителя-адресата.
type FeedbackView struct {
	Feedback domain.Feedback
	Employee *domain.User
	Manager  *domain.User
}

// viewBuilder подставляет участников отзыва, запрашивая каждого пользователя не более раза за вызов
type viewBuilder struct {
	userRepo repository.UserRepository
}

func (b viewBuilder) one(ctx context.Context, viewer *domain.User, feedback *domain.Feedback) (*FeedbackView, error) {
	views, err := b.many(ctx, viewer, []domain.Feedback{*feedback})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (b viewBuilder) many(ctx context.Context, viewer *domain.User, items []domain.Feedback) ([]FeedbackView, error) {
	cache := map[int64]*domain.User{}
	if viewer != nil {
		cache[viewer.ID] = viewer
	}

	views := make([]FeedbackView, 0, len(items))
	for _, item := range items {
		employee, err := b.lookup(ctx, item.EmployeeID, cache)
		if err != nil {
			return nil, err
		}

		view := FeedbackView{Feedback: item, Employee: employee}
		if !hideAuthor(viewer, &item) {
			if view.Manager, err = b.lookup(ctx, item.ManagerID, cache); err != nil {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (b viewBuilder) lookup(ctx context.Context, id int64, cache map[int64]*domain.User) (*domain.User, error) {
	if user, ok := cache[id]; ok {
		return user, nil
	}
	user, err := b.userRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = user
	return user, nil
}

// hideAuthor: анонимность только скрывает автора от адресата, manager_id остаётся в записи
func hideAuthor(viewer *domain.User, feedback *domain.Feedback) bool {
	return feedback.IsAnonymous && viewer != nil && viewer.ID == feedback.EmployeeID
}
