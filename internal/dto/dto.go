package dto

import (
	"time"
)

// RegisterRequest - запрос на регистрацию пользователя
type RegisterRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"required,oneof=manager employee"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,min=1"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - выданный токен доступа
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CreateFeedbackRequest - запрос на создание отзыва
type CreateFeedbackRequest struct {
	EmployeeID     int64    `json:"employee_id" validate:"required,min=1"`
	Strengths      string   `json:"strengths" validate:"required,min=1,max=5000"`
	AreasToImprove string   `json:"areas_to_improve" validate:"required,min=1,max=5000"`
	Sentiment      string   `json:"sentiment" validate:"required,oneof=positive neutral negative"`
	Tags           []string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsAnonymous    bool     `json:"is_anonymous"`
}

// UpdateFeedbackRequest - частичное обновление отзыва; отсутствующие поля не меняются
type UpdateFeedbackRequest struct {
	Strengths      *string   `json:"strengths" validate:"omitempty,min=1,max=5000"`
	AreasToImprove *string   `json:"areas_to_improve" validate:"omitempty,min=1,max=5000"`
	Sentiment      *string   `json:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
	Tags           *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	IsAnonymous    *bool     `json:"is_anonymous"`
}

// CommentRequest - комментарий сотрудника к отзыву
type CommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

// UserResponse - публичная проекция пользователя
type UserResponse struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	ManagerID *int64       `json:"manager_id"`
	CreatedAt time.Time    `json:"created_at"`
	Manager   *UserSummary `json:"manager,omitempty"`
}

// UserSummary - краткие сведения об участнике отзыва
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FeedbackResponse - ответ с данными отзыва
type FeedbackResponse struct {
	ID              int64        `json:"id"`
	EmployeeID      int64        `json:"employee_id"`
	ManagerID       int64        `json:"manager_id"`
	Strengths       string       `json:"strengths"`
	AreasToImprove  string       `json:"areas_to_improve"`
	Sentiment       string       `json:"sentiment"`
	Tags            []string     `json:"tags"`
	IsAnonymous     bool         `json:"is_anonymous"`
	Acknowledged    bool         `json:"acknowledged"`
	AcknowledgedAt  *time.Time   `json:"acknowledged_at"`
	EmployeeComment *string      `json:"employee_comment"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       *time.Time   `json:"updated_at"`
	Employee        *UserSummary `json:"employee,omitempty"`
	Manager         *UserSummary `json:"manager,omitempty"`
}

// ManagerDashboardResponse - сводка руководителя
type ManagerDashboardResponse struct {
	TeamSize         int                `json:"team_size"`
	TeamMembers      []UserResponse     `json:"team_members"`
	TotalFeedback    int                `json:"total_feedback"`
	PositiveFeedback int                `json:"positive_feedback"`
	NeutralFeedback  int                `json:"neutral_feedback"`
	NegativeFeedback int                `json:"negative_feedback"`
	RecentFeedback   []FeedbackResponse `json:"recent_feedback"`
}

// EmployeeDashboardResponse - сводка сотрудника
type EmployeeDashboardResponse struct {
	TotalFeedback          int                `json:"total_feedback"`
	UnacknowledgedFeedback int                `json:"unacknowledged_feedback"`
	PositiveFeedback       int                `json:"positive_feedback"`
	NeutralFeedback        int                `json:"neutral_feedback"`
	NegativeFeedback       int                `json:"negative_feedback"`
	RecentFeedback         []FeedbackResponse `json:"recent_feedback"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
