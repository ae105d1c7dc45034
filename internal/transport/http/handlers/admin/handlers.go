package adminhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/platform/metrics"
	"bizman/internal/transport/http/api"
	"bizman/internal/transport/http/middleware"
)

type Handler struct {
	Collector *metrics.Collector
	Perms     middleware.PermissionStore
}

func NewHandler(collector *metrics.Collector, perms middleware.PermissionStore) *Handler {
	return &Handler{Collector: collector, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAdminMetrics, h.Perms)).Get("/metrics", h.handleMetrics)
	})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if h.Collector == nil {
		api.Fail(w, http.StatusServiceUnavailable, "metrics_disabled", "metrics collection is disabled", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, h.Collector.Snapshot(), middleware.GetRequestID(r.Context()))
}
