package handler

import (
	"log/slog"
	"net/http"

	"github.com/feedback-api/internal/service"
)

type UserHandler struct {
	base
	userService service.UserService
}

func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		base:        newBase(logger),
		userService: userService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, toUserResponse(caller))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), caller, id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Team(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	team, err := h.userService.Team(r.Context(), caller)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toUserResponses(team))
}

// Managers доступен без токена: список нужен форме регистрации
func (h *UserHandler) Managers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.userService.Managers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toUserResponses(managers))
}
