package handler

import (
	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/service"
)

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		ManagerID: user.ManagerID,
		CreatedAt: user.CreatedAt,
		Manager:   toUserSummary(user.Manager),
	}
}

func toUserResponses(users []domain.User) []dto.UserResponse {
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = toUserResponse(&users[i])
	}
	return resp
}

func toUserSummary(user *domain.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func toFeedbackResponse(view *service.FeedbackView) dto.FeedbackResponse {
	f := &view.Feedback
	return dto.FeedbackResponse{
		ID:              f.ID,
		EmployeeID:      f.EmployeeID,
		ManagerID:       f.ManagerID,
		Strengths:       f.Strengths,
		AreasToImprove:  f.AreasToImprove,
		Sentiment:       string(f.Sentiment),
		Tags:            f.TagList(),
		IsAnonymous:     f.IsAnonymous,
		Acknowledged:    f.Acknowledged,
		AcknowledgedAt:  f.AcknowledgedAt,
		EmployeeComment: f.EmployeeComment,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
		Employee:        toUserSummary(view.Employee),
		Manager:         toUserSummary(view.Manager),
	}
}

func toFeedbackResponses(views []service.FeedbackView) []dto.FeedbackResponse {
	resp := make([]dto.FeedbackResponse, len(views))
	for i := range views {
		resp[i] = toFeedbackResponse(&views[i])
	}
	return resp
}
