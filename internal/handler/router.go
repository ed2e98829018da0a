package handler

import (
	"log/slog"
	"net/http"

	"github.com/feedback-api/internal/config"
	"github.com/feedback-api/internal/middleware"
)

const (
	serviceName    = "feedback-api"
	serviceVersion = "1.0.0"
)

// Handlers - набор хендлеров, из которых собирается API
type Handlers struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Feedback  *FeedbackHandler
	Dashboard *DashboardHandler
}

// Router настраивает маршруты API
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	handlers Handlers
	resolver middleware.TokenResolver
	cors     config.CORSConfig
}

// NewRouter создаёт новый роутер
func NewRouter(handlers Handlers, resolver middleware.TokenResolver, cors config.CORSConfig, logger *slog.Logger) *Router {
	return &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		handlers: handlers,
		resolver: resolver,
		cors:     cors,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	authn := middleware.Authenticate(r.resolver, r.logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return authn(h)
	}

	// Аутентификация
	r.mux.HandleFunc("POST /auth/register", r.handlers.Auth.Register)
	r.mux.HandleFunc("POST /auth/login", r.handlers.Auth.Login)

	// Пользователи
	r.mux.HandleFunc("GET /users/managers", r.handlers.Users.Managers)
	r.mux.Handle("GET /users/me", protected(r.handlers.Users.Me))
	r.mux.Handle("GET /users/team", protected(r.handlers.Users.Team))
	r.mux.Handle("GET /users/{id}", protected(r.handlers.Users.GetByID))

	// Отзывы
	for _, path := range []string{"/feedback", "/feedback/{$}"} {
		r.mux.Handle("POST "+path, protected(r.handlers.Feedback.Create))
		r.mux.Handle("GET "+path, protected(r.handlers.Feedback.List))
	}
	r.mux.Handle("GET /feedback/my-feedback", protected(r.handlers.Feedback.MyFeedback))
	r.mux.Handle("GET /feedback/employee/{id}", protected(r.handlers.Feedback.ListForEmployee))
	r.mux.Handle("GET /feedback/{id}", protected(r.handlers.Feedback.GetByID))
	r.mux.Handle("PUT /feedback/{id}", protected(r.handlers.Feedback.Update))
	r.mux.Handle("PATCH /feedback/{id}", protected(r.handlers.Feedback.Update))
	r.mux.Handle("POST /feedback/{id}/acknowledge", protected(r.handlers.Feedback.Acknowledge))
	r.mux.Handle("POST /feedback/{id}/comment", protected(r.handlers.Feedback.Comment))

	// Дашборды
	r.mux.Handle("GET /dashboard/manager", protected(r.handlers.Dashboard.Manager))
	r.mux.Handle("GET /dashboard/employee", protected(r.handlers.Dashboard.Employee))

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	r.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"` + serviceName + `","version":"` + serviceVersion + `"}`))
	})

	// Применяем middleware
	return middleware.Stack(r.logger, r.cors)(r.mux)
}
