package cataloghandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/catalog"
	"bizman/internal/transport/http/api"
	"bizman/internal/transport/http/middleware"
	"bizman/internal/transport/http/shared"
)

type Handler struct {
	Store *catalog.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *catalog.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCatalogRead, h.Perms)).Get("/positions", h.handleListPositions)
		r.With(middleware.RequirePermission(auth.PermCatalogWrite, h.Perms)).Post("/positions", h.handleCreatePosition)
		r.With(middleware.RequirePermission(auth.PermCatalogRead, h.Perms)).Get("/positions/{positionID}/responsibilities", h.handleListResponsibilities)
		r.With(middleware.RequirePermission(auth.PermCatalogWrite, h.Perms)).Post("/positions/{positionID}/responsibilities", h.handleCreateResponsibility)
	})
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.Store.ListPositions(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, positions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "position name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreatePosition(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_create_failed", "failed to create position", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListResponsibilities(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")
	responsibilities, err := h.Store.ListResponsibilities(r.Context(), positionID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list responsibilities", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, responsibilities, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateResponsibility(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionID")

	var payload struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Weight      float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "responsibility title is required")
	if payload.Weight < 0 {
		v.Add("weight", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Store.CreateResponsibility(r.Context(), positionID, payload.Title, payload.Description, payload.Weight)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_create_failed", "failed to create responsibility", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}
