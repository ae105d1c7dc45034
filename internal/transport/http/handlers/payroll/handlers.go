package payrollhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/payroll"
	"bizman/internal/transport/http/api"
	"bizman/internal/transport/http/middleware"
	"bizman/internal/transport/http/shared"
)

// EmployeeResolver maps a user account to its employee record, empty when the
// account has none.
type EmployeeResolver interface {
	EmployeeIDForUser(ctx context.Context, userID string) string
}

type Handler struct {
	Service   *payroll.Service
	Perms     middleware.PermissionStore
	Employees EmployeeResolver
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore, employees EmployeeResolver) *Handler {
	return &Handler{Service: service, Perms: perms, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/", h.handleGetOrCreate)
		r.With(middleware.RequirePermission(auth.PermPayrollExport, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Put("/{payrollID}", h.handleSave)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/{payrollID}/payslip", h.handlePayslip)
	})
}

func failPayroll(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "month must be 1-12 and year within range", requestID)
	case errors.Is(err, payroll.ErrInvalidAmount):
		api.Fail(w, http.StatusBadRequest, "invalid_amount", "amounts must not be negative", requestID)
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}

// ownRecordOnly restricts non-privileged callers to their own payroll rows.
func (h *Handler) ownRecordOnly(r *http.Request, user auth.UserContext, employeeID string) bool {
	if auth.IsPrivileged(user.RoleName) {
		return true
	}
	own := h.Employees.EmployeeIDForUser(r.Context(), user.UserID)
	return own != "" && own == employeeID
}

func (h *Handler) handleGetOrCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID = h.Employees.EmployeeIDForUser(r.Context(), user.UserID)
	}
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "employee id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if !h.ownRecordOnly(r, user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed for this payroll record", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.GetOrCreate(r.Context(), employeeID, month, year)
	if err != nil {
		failPayroll(w, r, err, "payroll_get_failed", "failed to load payroll record")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload payroll.SaveInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	view, err := h.Service.Save(r.Context(), chi.URLParam(r, "payrollID"), payload)
	if err != nil {
		failPayroll(w, r, err, "payroll_save_failed", "failed to save payroll record")
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	payrollID := chi.URLParam(r, "payrollID")
	detail, err := h.Service.Get(r.Context(), payrollID)
	if err != nil {
		failPayroll(w, r, err, "payslip_failed", "failed to load payroll record")
		return
	}
	if !h.ownRecordOnly(r, user, detail.EmployeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed for this payroll record", middleware.GetRequestID(r.Context()))
		return
	}

	path, err := h.Service.GeneratePayslipPDF(r.Context(), payrollID)
	if err != nil {
		failPayroll(w, r, err, "payslip_failed", "failed to generate payslip")
		return
	}
	api.Success(w, map[string]string{"path": path}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	path, err := h.Service.ExportRegister(r.Context(), month, year)
	if err != nil {
		failPayroll(w, r, err, "payroll_export_failed", "failed to export payroll register")
		return
	}
	api.Success(w, map[string]string{"path": path}, middleware.GetRequestID(r.Context()))
}
