package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/middleware"
	"github.com/go-playground/validator/v10"
)

// base - общие для всех хендлеров разбор запроса и формирование ответа
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(logger *slog.Logger) base {
	return base{validator: validator.New(), logger: logger}
}

// decode читает JSON тело и проверяет его по тегам validate
func (h base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

// caller возвращает пользователя, положенного в контекст middleware.Authenticate
func (h base) caller(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.respondError(w, http.StatusUnauthorized, "could not validate credentials", "")
		return nil, false
	}
	return user, true
}

func (h base) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err == nil && id <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s id", name), err.Error())
		return 0, false
	}
	return id, true
}

// handleServiceError переводит класс доменной ошибки в HTTP статус
func (h base) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		h.respondError(w, http.StatusNotFound, err.Error(), "")
	case domain.KindUnauthenticated:
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.respondError(w, http.StatusUnauthorized, message(err, domain.ErrUnauthenticated), "")
	case domain.KindForbidden:
		h.respondError(w, http.StatusForbidden, message(err, domain.ErrForbidden), "")
	case domain.KindValidation:
		h.respondError(w, http.StatusBadRequest, "validation error", message(err, domain.ErrValidation))
	case domain.KindConflict:
		h.respondError(w, http.StatusConflict, message(err, domain.ErrConflict), "")
	default:
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.String("path", r.URL.Path),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// message убирает префикс класса ("forbidden: ...") из текста ошибки
func message(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}
