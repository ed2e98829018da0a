package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Sentiment - тональность отзыва
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment проверяет строковое значение тональности
func ParseSentiment(raw string) (Sentiment, error) {
	switch Sentiment(raw) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return Sentiment(raw), nil
	default:
		return "", ErrInvalidSentiment
	}
}

// Feedback - отзыв руководителя о прямом подчинённом.
// Контентные поля меняет только автор, acknowledged и employee_comment - только адресат.
type Feedback struct {
	ID              int64                       `gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64                       `gorm:"not null;index"`
	ManagerID       int64                       `gorm:"not null;index"`
	Strengths       string                      `gorm:"type:text;not null"`
	AreasToImprove  string                      `gorm:"type:text;not null"`
	Sentiment       Sentiment                   `gorm:"type:varchar(16);not null"`
	Tags            datatypes.JSONSlice[string] `gorm:"not null"`
	IsAnonymous     bool                        `gorm:"not null;default:false"`
	Acknowledged    bool                        `gorm:"not null;default:false"`
	AcknowledgedAt  *time.Time
	EmployeeComment *string    `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName задаёт имя таблицы для GORM
func (Feedback) TableName() string {
	return "feedback"
}

// TagList возвращает теги как обычный срез, никогда не nil
func (f *Feedback) TagList() []string {
	if len(f.Tags) == 0 {
		return []string{}
	}
	out := make([]string, len(f.Tags))
	copy(out, f.Tags)
	return out
}

// FeedbackPatch - частичное обновление контента; nil означает "не менять"
type FeedbackPatch struct {
	Strengths      *string
	AreasToImprove *string
	Sentiment      *Sentiment
	Tags           *[]string
	IsAnonymous    *bool
}

// IsEmpty сообщает, что ни одно поле не передано
func (p FeedbackPatch) IsEmpty() bool {
	return p.Strengths == nil && p.AreasToImprove == nil && p.Sentiment == nil &&
		p.Tags == nil && p.IsAnonymous == nil
}

// FeedbackStats - агрегаты по набору отзывов
type FeedbackStats struct {
	Total          int
	Positive       int
	Neutral        int
	Negative       int
	Unacknowledged int
}

// NormalizeTags обрезает пробелы, выбрасывает пустые значения и повторы,
// сохраняя порядок первого вхождения
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
