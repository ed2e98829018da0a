package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feedback-api/internal/database"
	"github.com/feedback-api/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedbackRepository - хранилище отзывов
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Feedback, error)
	ListByManager(ctx context.Context, managerID int64) ([]domain.Feedback, error)
	Update(ctx context.Context, id int64, patch domain.FeedbackPatch) (*domain.Feedback, error)
	Acknowledge(ctx context.Context, id int64) (*domain.Feedback, error)
	SetEmployeeComment(ctx context.Context, id int64, comment string) (*domain.Feedback, error)
}

type feedbackRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFeedbackRepository создаёт новый экземпляр репозитория
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db, now: time.Now}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	feedback.Tags = datatypes.JSONSlice[string](domain.NormalizeTags(feedback.Tags))
	feedback.Acknowledged = false
	feedback.AcknowledgedAt = nil
	feedback.UpdatedAt = nil

	if err := r.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return fmt.Errorf("create feedback: %w", database.MapError(err))
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	return r.load(r.db.WithContext(ctx), id)
}

func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Feedback, error) {
	return r.list(ctx, "employee_id = ?", employeeID)
}

func (r *feedbackRepository) ListByManager(ctx context.Context, managerID int64) ([]domain.Feedback, error) {
	return r.list(ctx, "manager_id = ?", managerID)
}

func (r *feedbackRepository) list(ctx context.Context, cond string, arg int64) ([]domain.Feedback, error) {
	items := make([]domain.Feedback, 0)
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return items, nil
}

// Update применяет только переданные поля. updated_at меняется,
// только если хотя бы одно значение действительно изменилось.
func (r *feedbackRepository) Update(ctx context.Context, id int64, patch domain.FeedbackPatch) (*domain.Feedback, error) {
	var result *domain.Feedback

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := r.load(tx, id)
		if err != nil {
			return err
		}

		updates := contentChanges(current, patch)
		if len(updates) == 0 {
			result = current
			return nil
		}
		updates["updated_at"] = r.now()

		if err := tx.Model(&domain.Feedback{}).
			Where("id = ?", id).
			UpdateColumns(updates).Error; err != nil {
			return fmt.Errorf("update feedback: %w", database.MapError(err))
		}

		result, err = r.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Acknowledge отмечает отзыв прочитанным. acknowledged_at записывается один раз:
// повторный вызов ничего не меняет.
func (r *feedbackRepository) Acknowledge(ctx context.Context, id int64) (*domain.Feedback, error) {
	db := r.db.WithContext(ctx)

	err := db.Model(&domain.Feedback{}).
		Where("id = ? AND acknowledged = ?", id, false).
		UpdateColumns(map[string]any{
			"acknowledged":    true,
			"acknowledged_at": r.now(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("acknowledge feedback: %w", err)
	}

	return r.load(db, id)
}

// SetEmployeeComment перезаписывает единственный комментарий сотрудника
func (r *feedbackRepository) SetEmployeeComment(ctx context.Context, id int64, comment string) (*domain.Feedback, error) {
	db := r.db.WithContext(ctx)

	res := db.Model(&domain.Feedback{}).
		Where("id = ?", id).
		UpdateColumn("employee_comment", comment)
	if res.Error != nil {
		return nil, fmt.Errorf("comment feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrFeedbackNotFound
	}

	return r.load(db, id)
}

func (r *feedbackRepository) load(db *gorm.DB, id int64) (*domain.Feedback, error) {
	var feedback domain.Feedback
	if err := db.First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	return &feedback, nil
}

func contentChanges(current *domain.Feedback, patch domain.FeedbackPatch) map[string]any {
	updates := map[string]any{}

	if patch.Strengths != nil && *patch.Strengths != current.Strengths {
		updates["strengths"] = *patch.Strengths
	}
	if patch.AreasToImprove != nil && *patch.AreasToImprove != current.AreasToImprove {
		updates["areas_to_improve"] = *patch.AreasToImprove
	}
	if patch.Sentiment != nil && *patch.Sentiment != current.Sentiment {
		updates["sentiment"] = *patch.Sentiment
	}
	if patch.Tags != nil {
		tags := domain.NormalizeTags(*patch.Tags)
		if !equalTags(tags, current.Tags) {
			updates["tags"] = datatypes.JSONSlice[string](tags)
		}
	}
	if patch.IsAnonymous != nil && *patch.IsAnonymous != current.IsAnonymous {
		updates["is_anonymous"] = *patch.IsAnonymous
	}

	return updates
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
