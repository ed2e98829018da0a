package handler

import (
	"log/slog"
	"net/http"

	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/service"
)

type DashboardHandler struct {
	base
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		base:             newBase(logger),
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) Manager(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	board, err := h.dashboardService.Manager(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.ManagerDashboardResponse{
		TeamSize:         len(board.Team),
		TeamMembers:      toUserResponses(board.Team),
		TotalFeedback:    board.Stats.Total,
		PositiveFeedback: board.Stats.Positive,
		NeutralFeedback:  board.Stats.Neutral,
		NegativeFeedback: board.Stats.Negative,
		RecentFeedback:   toFeedbackResponses(board.Recent),
	})
}

func (h *DashboardHandler) Employee(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	board, err := h.dashboardService.Employee(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, dto.EmployeeDashboardResponse{
		TotalFeedback:          board.Stats.Total,
		UnacknowledgedFeedback: board.Stats.Unacknowledged,
		PositiveFeedback:       board.Stats.Positive,
		NeutralFeedback:        board.Stats.Neutral,
		NegativeFeedback:       board.Stats.Negative,
		RecentFeedback:         toFeedbackResponses(board.Recent),
	})
}
