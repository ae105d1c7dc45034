package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bizman/internal/domain/auth"
	"bizman/internal/domain/notifications"
)

// Notifier is the workflow's view of the notification dispatcher.
// Dispatch failures are logged, never propagated: a score write must not be
// rolled back because the next rater could not be told about it.
type Notifier interface {
	Notify(ctx context.Context, employeeID, ntype, title, message, evaluationID, period string) error
}

type Service struct {
	store  StoreAPI
	notify Notifier
}

func NewService(store StoreAPI, notify Notifier) *Service {
	return &Service{store: store, notify: notify}
}

type EvaluationWithDetails struct {
	Evaluation Evaluation `json:"evaluation"`
	Details    []Detail   `json:"details"`
}

// CreateOrGet returns the evaluation for (employeeID, period), creating it
// with one detail row per position responsibility on first request. The
// unique (employee_id, period) constraint makes concurrent calls converge on
// a single row.
func (s *Service) CreateOrGet(ctx context.Context, employeeID, period string) (EvaluationWithDetails, error) {
	emp, err := s.store.EmployeeWithPosition(ctx, employeeID)
	if err != nil {
		return EvaluationWithDetails{}, err
	}

	eval, err := s.store.FindEvaluation(ctx, employeeID, period)
	if errors.Is(err, ErrNotFound) {
		eval, err = s.create(ctx, emp, period)
	}
	if err != nil {
		return EvaluationWithDetails{}, err
	}

	details, err := s.store.ListDetails(ctx, eval.ID)
	if err != nil {
		return EvaluationWithDetails{}, err
	}
	return EvaluationWithDetails{Evaluation: eval, Details: details}, nil
}

func (s *Service) create(ctx context.Context, emp Employee, period string) (Evaluation, error) {
	inserted, err := s.store.InsertEvaluation(ctx, emp.ID, period, StatusSelfOrSupervisor1Pending)
	if err != nil {
		return Evaluation{}, err
	}

	eval, err := s.store.FindEvaluation(ctx, emp.ID, period)
	if err != nil {
		return Evaluation{}, err
	}
	if !inserted {
		// Lost the creation race; the winner owns detail rows and notification.
		return eval, nil
	}

	responsibilities, err := s.store.PositionResponsibilities(ctx, emp.PositionID)
	if err != nil {
		return Evaluation{}, err
	}
	responsibilityIDs := make([]string, 0, len(responsibilities))
	for _, responsibility := range responsibilities {
		responsibilityIDs = append(responsibilityIDs, responsibility.ID)
	}
	if err := s.store.InsertDetails(ctx, eval.ID, responsibilityIDs); err != nil {
		return Evaluation{}, err
	}

	s.dispatch(ctx, emp.ID, notifications.TypeEvaluation,
		"Performance evaluation opened",
		fmt.Sprintf("Your evaluation for %s is ready for self-scoring.", period),
		eval.ID, period)

	return eval, nil
}

// SubmitDetailScore validates and persists one score, then re-scans all
// sibling rows to decide whether the submitted stage just completed. Status
// is always rewritten from DeriveStatus, so the stored value cannot drift
// from the detail contents.
func (s *Service) SubmitDetailScore(ctx context.Context, caller auth.UserContext, detailID string, stage Stage, value float64) (Detail, error) {
	if !ValidStage(stage) {
		return Detail{}, ErrInvalidStage
	}
	if value < 0 || value > 100 {
		return Detail{}, ErrInvalidScore
	}

	detail, err := s.store.DetailByID(ctx, detailID)
	if err != nil {
		return Detail{}, err
	}
	eval, err := s.store.EvaluationByID(ctx, detail.EvaluationID)
	if err != nil {
		return Detail{}, err
	}

	caps := ResolveCapabilities(caller.RoleName, s.callerEmployeeID(ctx, caller), eval.EmployeeID)
	if !caps.CanWrite(stage) {
		return Detail{}, ErrAccessDenied
	}

	if err := s.store.UpdateDetailScore(ctx, detailID, stage, value); err != nil {
		return Detail{}, err
	}

	details, err := s.store.ListDetails(ctx, eval.ID)
	if err != nil {
		return Detail{}, err
	}
	if StageComplete(details, stage) {
		s.advance(ctx, eval, details, stage)
	}

	for _, updated := range details {
		if updated.ID == detailID {
			return updated, nil
		}
	}
	return Detail{}, ErrNotFound
}

// advance persists the derived status and notifies the next rater. Two
// concurrent submissions completing the same stage may both get here; the
// status write is idempotent and a duplicate notification is accepted.
func (s *Service) advance(ctx context.Context, eval Evaluation, details []Detail, completed Stage) {
	status := DeriveStatus(details)
	if err := s.store.UpdateEvaluationStatus(ctx, eval.ID, status); err != nil {
		slog.Error("evaluation status update failed", "evaluationId", eval.ID, "status", status, "err", err)
		return
	}

	emp, err := s.store.EmployeeWithPosition(ctx, eval.EmployeeID)
	if err != nil {
		slog.Warn("evaluation employee lookup failed", "evaluationId", eval.ID, "err", err)
		return
	}

	switch completed {
	case StageSelf:
		// The chain decides who is told next. With no supervisor-1 the request
		// goes straight to supervisor-2; with neither, the workflow stalls here
		// by design and that is not an error.
		if emp.Supervisor1UserID != nil {
			s.notifySupervisor(ctx, *emp.Supervisor1UserID, notifications.TypeEvaluationSupervisor1,
				"Evaluation awaiting first review",
				fmt.Sprintf("Employee %s finished self-scoring for %s.", emp.EmployeeCode, eval.Period),
				eval.ID, eval.Period)
		} else if emp.Supervisor2UserID != nil {
			s.notifySupervisor(ctx, *emp.Supervisor2UserID, notifications.TypeEvaluationSupervisor2,
				"Evaluation awaiting final review",
				fmt.Sprintf("Employee %s finished self-scoring for %s.", emp.EmployeeCode, eval.Period),
				eval.ID, eval.Period)
		}
	case StageSupervisor1:
		if emp.Supervisor2UserID != nil {
			s.notifySupervisor(ctx, *emp.Supervisor2UserID, notifications.TypeEvaluationSupervisor2,
				"Evaluation awaiting final review",
				fmt.Sprintf("First review for employee %s, period %s, is complete.", emp.EmployeeCode, eval.Period),
				eval.ID, eval.Period)
		}
	case StageSupervisor2:
		// Completed; nobody is next.
	}
}

func (s *Service) notifySupervisor(ctx context.Context, supervisorUserID, ntype, title, message, evaluationID, period string) {
	supervisorEmployeeID, err := s.store.EmployeeIDByUserID(ctx, supervisorUserID)
	if err != nil {
		slog.Warn("supervisor employee lookup failed", "userId", supervisorUserID, "err", err)
		return
	}
	s.dispatch(ctx, supervisorEmployeeID, ntype, title, message, evaluationID, period)
}

func (s *Service) dispatch(ctx context.Context, employeeID, ntype, title, message, evaluationID, period string) {
	if s.notify == nil {
		return
	}
	if err := s.notify.Notify(ctx, employeeID, ntype, title, message, evaluationID, period); err != nil {
		slog.Warn("notification dispatch failed", "employeeId", employeeID, "type", ntype, "err", err)
	}
}

// Finalize blends the current stage percentages into the evaluation's single
// score field. It may run before supervisor-2 completion; incomplete stages
// simply contribute nothing.
func (s *Service) Finalize(ctx context.Context, evaluationID string) (Evaluation, error) {
	eval, err := s.store.EvaluationByID(ctx, evaluationID)
	if err != nil {
		return Evaluation{}, err
	}
	details, err := s.store.ListDetails(ctx, eval.ID)
	if err != nil {
		return Evaluation{}, err
	}

	final := FinalScore(details)
	if err := s.store.UpdateEvaluationScore(ctx, eval.ID, final); err != nil {
		return Evaluation{}, err
	}
	eval.Score = final
	return eval, nil
}

// Get returns the evaluation with details for (employeeID, period), enforcing
// the read capability. The record itself is created lazily via CreateOrGet.
func (s *Service) Get(ctx context.Context, caller auth.UserContext, employeeID, period string) (EvaluationWithDetails, error) {
	caps := ResolveCapabilities(caller.RoleName, s.callerEmployeeID(ctx, caller), employeeID)
	if !caps.CanRead {
		return EvaluationWithDetails{}, ErrAccessDenied
	}
	return s.CreateOrGet(ctx, employeeID, period)
}

// GetByID loads an evaluation by row id, enforcing the read capability
// against the evaluation's owner.
func (s *Service) GetByID(ctx context.Context, caller auth.UserContext, evaluationID string) (EvaluationWithDetails, error) {
	eval, err := s.store.EvaluationByID(ctx, evaluationID)
	if err != nil {
		return EvaluationWithDetails{}, err
	}
	caps := ResolveCapabilities(caller.RoleName, s.callerEmployeeID(ctx, caller), eval.EmployeeID)
	if !caps.CanRead {
		return EvaluationWithDetails{}, ErrAccessDenied
	}
	details, err := s.store.ListDetails(ctx, eval.ID)
	if err != nil {
		return EvaluationWithDetails{}, err
	}
	return EvaluationWithDetails{Evaluation: eval, Details: details}, nil
}

func (s *Service) History(ctx context.Context, caller auth.UserContext, employeeID string) ([]Evaluation, error) {
	caps := ResolveCapabilities(caller.RoleName, s.callerEmployeeID(ctx, caller), employeeID)
	if !caps.CanRead {
		return nil, ErrAccessDenied
	}
	return s.store.ListEvaluationsByEmployee(ctx, employeeID)
}

// Supervisor2Percentage is the payroll subsystem's read: the raw supervisor-2
// stage percentage for (employeeID, period), zero when no evaluation exists
// or nothing has been scored yet.
func (s *Service) Supervisor2Percentage(ctx context.Context, employeeID, period string) (float64, error) {
	eval, err := s.store.FindEvaluation(ctx, employeeID, period)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	details, err := s.store.ListDetails(ctx, eval.ID)
	if err != nil {
		return 0, err
	}
	return StagePercentage(details, StageSupervisor2), nil
}

// EmployeeIDForUser resolves the caller's own employee record, empty when the
// account has none (pure back-office users).
func (s *Service) EmployeeIDForUser(ctx context.Context, userID string) string {
	return s.callerEmployeeID(ctx, auth.UserContext{UserID: userID})
}

func (s *Service) callerEmployeeID(ctx context.Context, caller auth.UserContext) string {
	employeeID, err := s.store.EmployeeIDByUserID(ctx, caller.UserID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("caller employee lookup failed", "userId", caller.UserID, "err", err)
		}
		return ""
	}
	return employeeID
}
