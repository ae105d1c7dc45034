package evaluationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/evaluation"
	"bizman/internal/transport/http/api"
	"bizman/internal/transport/http/middleware"
	"bizman/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *evaluation.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermEvaluationsRead, h.Perms)).Get("/{evaluationID}", h.handleGetByID)
		r.With(middleware.RequirePermission(auth.PermEvaluationsWrite, h.Perms)).Put("/details/{detailID}", h.handleSubmitScore)
		r.With(middleware.RequirePermission(auth.PermEvaluationsFinalize, h.Perms)).Post("/{evaluationID}/finalize", h.handleFinalize)
	})
}

// stageSummary carries the presentation-rounded percentages; raw values stay
// unrounded inside the domain.
type stageSummary struct {
	TotalWeight           float64 `json:"totalWeight"`
	SelfPercentage        float64 `json:"selfPercentage"`
	Supervisor1Percentage float64 `json:"supervisor1Percentage"`
	Supervisor2Percentage float64 `json:"supervisor2Percentage"`
	FinalScore            float64 `json:"finalScore"`
}

type evaluationResponse struct {
	Evaluation evaluation.Evaluation `json:"evaluation"`
	Details    []evaluation.Detail   `json:"details"`
	Summary    stageSummary          `json:"summary"`
}

func buildResponse(result evaluation.EvaluationWithDetails) evaluationResponse {
	eval := result.Evaluation
	eval.Score = evaluation.Round2(eval.Score)
	return evaluationResponse{
		Evaluation: eval,
		Details:    result.Details,
		Summary: stageSummary{
			TotalWeight:           evaluation.TotalWeight(result.Details),
			SelfPercentage:        evaluation.Round2(evaluation.StagePercentage(result.Details, evaluation.StageSelf)),
			Supervisor1Percentage: evaluation.Round2(evaluation.StagePercentage(result.Details, evaluation.StageSupervisor1)),
			Supervisor2Percentage: evaluation.Round2(evaluation.StagePercentage(result.Details, evaluation.StageSupervisor2)),
			FinalScore:            evaluation.Round2(evaluation.FinalScore(result.Details)),
		},
	}
}

func failEvaluation(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, evaluation.ErrInvalidScore):
		api.Fail(w, http.StatusBadRequest, "invalid_score", "score must be between 0 and 100", requestID)
	case errors.Is(err, evaluation.ErrInvalidStage):
		api.Fail(w, http.StatusBadRequest, "invalid_stage", "unknown evaluation stage", requestID)
	case errors.Is(err, evaluation.ErrAccessDenied):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed for this evaluation", requestID)
	case errors.Is(err, evaluation.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation record not found", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	period := r.URL.Query().Get("period")
	if employeeID == "" {
		employeeID = h.Service.EmployeeIDForUser(r.Context(), user.UserID)
	}

	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "employee id is required")
	v.Required("period", period, "period is required")
	if period != "" {
		if _, _, err := shared.ParsePeriod(period); err != nil {
			v.Add("period", "must be in YYYY-MM format")
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.Get(r.Context(), user, employeeID, period)
	if err != nil {
		failEvaluation(w, r, err, "evaluation_get_failed", "failed to load evaluation")
		return
	}
	api.Success(w, buildResponse(result), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.GetByID(r.Context(), user, chi.URLParam(r, "evaluationID"))
	if err != nil {
		failEvaluation(w, r, err, "evaluation_get_failed", "failed to load evaluation")
		return
	}
	api.Success(w, buildResponse(result), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID = h.Service.EmployeeIDForUser(r.Context(), user.UserID)
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "employee id is required", middleware.GetRequestID(r.Context()))
		return
	}

	history, err := h.Service.History(r.Context(), user, employeeID)
	if err != nil {
		failEvaluation(w, r, err, "evaluation_history_failed", "failed to load evaluation history")
		return
	}
	for i := range history {
		history[i].Score = evaluation.Round2(history[i].Score)
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Stage string   `json:"stage"`
		Score *float64 `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("stage", payload.Stage, "stage is required")
	if payload.Score == nil {
		v.Add("score", "score is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	detail, err := h.Service.SubmitDetailScore(r.Context(), user, chi.URLParam(r, "detailID"), evaluation.Stage(payload.Stage), *payload.Score)
	if err != nil {
		failEvaluation(w, r, err, "evaluation_submit_failed", "failed to submit score")
		return
	}
	api.Success(w, detail, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	eval, err := h.Service.Finalize(r.Context(), chi.URLParam(r, "evaluationID"))
	if err != nil {
		failEvaluation(w, r, err, "evaluation_finalize_failed", "failed to finalize evaluation")
		return
	}
	eval.Score = evaluation.Round2(eval.Score)
	api.Success(w, eval, middleware.GetRequestID(r.Context()))
}
