package handler

import (
	"log/slog"
	"net/http"

	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/service"
)

type FeedbackHandler struct {
	base
	feedbackService service.FeedbackService
}

func NewFeedbackHandler(feedbackService service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		base:            newBase(logger),
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.feedbackService.Create(r.Context(), caller, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toFeedbackResponse(view))
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	views, err := h.feedbackService.List(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponses(views))
}

func (h *FeedbackHandler) MyFeedback(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	views, err := h.feedbackService.Received(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponses(views))
}

func (h *FeedbackHandler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	employeeID, ok := h.pathID(w, r, "employee")
	if !ok {
		return
	}

	views, err := h.feedbackService.ListForEmployee(r.Context(), caller, employeeID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponses(views))
}

func (h *FeedbackHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "feedback")
	if !ok {
		return
	}

	view, err := h.feedbackService.Get(r.Context(), caller, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponse(view))
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "feedback")
	if !ok {
		return
	}

	var req dto.UpdateFeedbackRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.feedbackService.Update(r.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponse(view))
}

func (h *FeedbackHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "feedback")
	if !ok {
		return
	}

	view, err := h.feedbackService.Acknowledge(r.Context(), caller, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponse(view))
}

func (h *FeedbackHandler) Comment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "feedback")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.feedbackService.Comment(r.Context(), caller, id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toFeedbackResponse(view))
}
