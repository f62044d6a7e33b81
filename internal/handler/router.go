package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/pkg/respond"
)

const (
	healthTimeout = 2 * time.Second

	// MaxBodyBytes caps request bodies; a maximal description fits well below it.
	MaxBodyBytes = 1 << 20
)

func NewRouter(h *TaskHandler, logger *zap.Logger) chi.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(MaxBodyBytes))

	r.Get("/health", h.Health)

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/completed", h.ListCompleted)
		r.Get("/not-completed", h.ListNotCompleted)
		r.Patch("/{id}", h.MarkCompleted)
		r.Delete("/{id}", h.Delete)
	})

	return r
}

// Health пингует хранилище, чтобы балансировщик не слал трафик на инстанс без БД.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		respond.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
