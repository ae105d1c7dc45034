package notificationshandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/notifications"
	"bizman/internal/transport/http/api"
	"bizman/internal/transport/http/middleware"
	"bizman/internal/transport/http/shared"
)

// EmployeeResolver maps a user account to its employee record. Notifications
// are addressed to employee ids, so a caller without one has an empty feed.
type EmployeeResolver interface {
	EmployeeIDForUser(ctx context.Context, userID string) string
}

type Handler struct {
	Service   *notifications.Service
	Perms     middleware.PermissionStore
	Employees EmployeeResolver
}

func NewHandler(service *notifications.Service, perms middleware.PermissionStore, employees EmployeeResolver) *Handler {
	return &Handler{Service: service, Perms: perms, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermNotificationsRead, h.Perms))
		r.Get("/", h.handleList)
		r.Get("/count", h.handleCount)
		r.Post("/{notificationID}/read", h.handleMarkRead)
		r.Post("/read-all", h.handleMarkAllRead)
	})
}

func (h *Handler) callerEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return h.Employees.EmployeeIDForUser(r.Context(), user.UserID), true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}
	if employeeID == "" {
		api.Success(w, []notifications.Notification{}, middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	items, err := h.Service.List(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_list_failed", "failed to list notifications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}

	unread := 0
	if employeeID != "" {
		count, err := h.Service.CountUnread(r.Context(), employeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "notification_count_failed", "failed to count notifications", middleware.GetRequestID(r.Context()))
			return
		}
		unread = count
	}

	w.Header().Set("X-Unread-Count", strconv.Itoa(unread))
	api.Success(w, map[string]int{"unread": unread}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}
	if employeeID == "" {
		api.Fail(w, http.StatusNotFound, "not_found", "notification not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.MarkRead(r.Context(), employeeID, chi.URLParam(r, "notificationID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to update notification", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}
	if employeeID == "" {
		api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.MarkAllRead(r.Context(), employeeID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to update notifications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "read"}, middleware.GetRequestID(r.Context()))
}
