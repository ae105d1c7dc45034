package evaluation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bizman/internal/domain/auth"
)

type fakeStore struct {
	employees        map[string]Employee
	userToEmployee   map[string]string
	responsibilities map[string][]Responsibility
	evaluations      map[string]*Evaluation
	evaluationByKey  map[string]string
	details          map[string]*Detail
	detailsByEval    map[string][]string
	nextID           int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:        map[string]Employee{},
		userToEmployee:   map[string]string{},
		responsibilities: map[string][]Responsibility{},
		evaluations:      map[string]*Evaluation{},
		evaluationByKey:  map[string]string{},
		details:          map[string]*Detail{},
		detailsByEval:    map[string][]string{},
	}
}

func (f *fakeStore) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeStore) EmployeeWithPosition(ctx context.Context, employeeID string) (Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) EmployeeIDByUserID(ctx context.Context, userID string) (string, error) {
	employeeID, ok := f.userToEmployee[userID]
	if !ok {
		return "", ErrNotFound
	}
	return employeeID, nil
}

func (f *fakeStore) PositionResponsibilities(ctx context.Context, positionID string) ([]Responsibility, error) {
	return f.responsibilities[positionID], nil
}

func (f *fakeStore) InsertEvaluation(ctx context.Context, employeeID, period, status string) (bool, error) {
	key := employeeID + "|" + period
	if _, exists := f.evaluationByKey[key]; exists {
		return false, nil
	}
	id := f.id("eval")
	f.evaluations[id] = &Evaluation{ID: id, EmployeeID: employeeID, Period: period, Status: status}
	f.evaluationByKey[key] = id
	return true, nil
}

func (f *fakeStore) FindEvaluation(ctx context.Context, employeeID, period string) (Evaluation, error) {
	id, ok := f.evaluationByKey[employeeID+"|"+period]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return *f.evaluations[id], nil
}

func (f *fakeStore) EvaluationByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	eval, ok := f.evaluations[evaluationID]
	if !ok {
		return Evaluation{}, ErrNotFound
	}
	return *eval, nil
}

func (f *fakeStore) ListEvaluationsByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	var out []Evaluation
	for _, eval := range f.evaluations {
		if eval.EmployeeID == employeeID {
			out = append(out, *eval)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertDetails(ctx context.Context, evaluationID string, responsibilityIDs []string) error {
	for _, responsibilityID := range responsibilityIDs {
		id := f.id("detail")
		weight := 0.0
		title := ""
		for _, resps := range f.responsibilities {
			for _, resp := range resps {
				if resp.ID == responsibilityID {
					weight = resp.Weight
					title = resp.Title
				}
			}
		}
		f.details[id] = &Detail{ID: id, EvaluationID: evaluationID, ResponsibilityID: responsibilityID, Title: title, Weight: weight}
		f.detailsByEval[evaluationID] = append(f.detailsByEval[evaluationID], id)
	}
	return nil
}

func (f *fakeStore) ListDetails(ctx context.Context, evaluationID string) ([]Detail, error) {
	var out []Detail
	for _, id := range f.detailsByEval[evaluationID] {
		out = append(out, *f.details[id])
	}
	return out, nil
}

func (f *fakeStore) DetailByID(ctx context.Context, detailID string) (Detail, error) {
	detail, ok := f.details[detailID]
	if !ok {
		return Detail{}, ErrNotFound
	}
	return *detail, nil
}

func (f *fakeStore) UpdateDetailScore(ctx context.Context, detailID string, stage Stage, value float64) error {
	detail, ok := f.details[detailID]
	if !ok {
		return ErrNotFound
	}
	switch stage {
	case StageSelf:
		detail.SelfScore = &value
	case StageSupervisor1:
		detail.Supervisor1Score = &value
	case StageSupervisor2:
		detail.Supervisor2Score = &value
	default:
		return ErrInvalidStage
	}
	return nil
}

func (f *fakeStore) UpdateEvaluationStatus(ctx context.Context, evaluationID, status string) error {
	eval, ok := f.evaluations[evaluationID]
	if !ok {
		return ErrNotFound
	}
	eval.Status = status
	return nil
}

func (f *fakeStore) UpdateEvaluationScore(ctx context.Context, evaluationID string, score float64) error {
	eval, ok := f.evaluations[evaluationID]
	if !ok {
		return ErrNotFound
	}
	eval.Score = score
	return nil
}

type sentNotification struct {
	EmployeeID string
	Type       string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, employeeID, ntype, title, message, evaluationID, period string) error {
	f.sent = append(f.sent, sentNotification{EmployeeID: employeeID, Type: ntype})
	return nil
}

// seedWorkflow builds an employee (user-1) with a three-responsibility
// position, a supervisor-1 (user-s1) and a supervisor-2 (user-s2), each with
// their own employee record so they can receive notifications.
func seedWorkflow(store *fakeStore, withSup1, withSup2 bool) Employee {
	store.responsibilities["pos-1"] = []Responsibility{
		{ID: "resp-1", Title: "Bookkeeping", Weight: 50},
		{ID: "resp-2", Title: "Tax filings", Weight: 30},
		{ID: "resp-3", Title: "Reconciliation", Weight: 20},
	}

	emp := Employee{ID: "emp-1", EmployeeCode: "EMP-001", PositionID: "pos-1", UserID: "user-1"}
	if withSup1 {
		sup1 := "user-s1"
		emp.Supervisor1UserID = &sup1
		store.employees["emp-s1"] = Employee{ID: "emp-s1", EmployeeCode: "EMP-S1", PositionID: "pos-1", UserID: sup1}
		store.userToEmployee[sup1] = "emp-s1"
	}
	if withSup2 {
		sup2 := "user-s2"
		emp.Supervisor2UserID = &sup2
		store.employees["emp-s2"] = Employee{ID: "emp-s2", EmployeeCode: "EMP-S2", PositionID: "pos-1", UserID: sup2}
		store.userToEmployee[sup2] = "emp-s2"
	}
	store.employees[emp.ID] = emp
	store.userToEmployee[emp.UserID] = emp.ID
	return emp
}

func submitAll(t *testing.T, svc *Service, caller auth.UserContext, details []Detail, stage Stage, value float64) {
	t.Helper()
	for _, detail := range details {
		if _, err := svc.SubmitDetailScore(context.Background(), caller, detail.ID, stage, value); err != nil {
			t.Fatalf("submit %s on %s failed: %v", stage, detail.ID, err)
		}
	}
}

func TestCreateOrGetIsIdempotent(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier)
	seedWorkflow(store, true, true)

	first, err := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(first.Details) != 3 {
		t.Fatalf("expected one detail per responsibility, got %d", len(first.Details))
	}
	if first.Evaluation.Status != StatusSelfOrSupervisor1Pending {
		t.Fatalf("unexpected initial status %s", first.Evaluation.Status)
	}

	second, err := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Evaluation.ID != first.Evaluation.ID {
		t.Fatal("expected the same evaluation for the same (employee, period)")
	}
	if len(store.evaluations) != 1 {
		t.Fatalf("expected exactly one evaluation row, got %d", len(store.evaluations))
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Type != "EVALUATION" {
		t.Fatalf("expected a single EVALUATION notification, got %+v", notifier.sent)
	}
}

func TestHappyPathThreeStageWorkflow(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier)
	seedWorkflow(store, true, true)

	created, err := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	owner := auth.UserContext{UserID: "user-1", RoleName: auth.RoleEmployee}
	lead := auth.UserContext{UserID: "user-s1", RoleName: auth.RoleTeamLead}
	head := auth.UserContext{UserID: "user-s2", RoleName: auth.RoleDepartmentHead}

	submitAll(t, svc, owner, created.Details, StageSelf, 100)
	eval, _ := store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if eval.Status != StatusSupervisor1Pending {
		t.Fatalf("after self stage expected %s, got %s", StatusSupervisor1Pending, eval.Status)
	}
	if got := countByType(notifier, "EVALUATION_SUPERVISOR1"); got != 1 {
		t.Fatalf("expected exactly one supervisor-1 notification, got %d", got)
	}

	submitAll(t, svc, lead, created.Details, StageSupervisor1, 100)
	eval, _ = store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if eval.Status != StatusSupervisor2Pending {
		t.Fatalf("after supervisor-1 stage expected %s, got %s", StatusSupervisor2Pending, eval.Status)
	}
	if got := countByType(notifier, "EVALUATION_SUPERVISOR2"); got != 1 {
		t.Fatalf("expected exactly one supervisor-2 notification, got %d", got)
	}

	before := len(notifier.sent)
	submitAll(t, svc, head, created.Details, StageSupervisor2, 100)
	eval, _ = store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if eval.Status != StatusCompleted {
		t.Fatalf("expected %s, got %s", StatusCompleted, eval.Status)
	}
	if len(notifier.sent) != before {
		t.Fatalf("completion must not notify anyone, got %+v", notifier.sent[before:])
	}
}

func TestSelfCompletionSkipsToSupervisor2(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier)
	seedWorkflow(store, false, true)

	created, err := svc.CreateOrGet(context.Background(), "emp-1", "2024-06")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	owner := auth.UserContext{UserID: "user-1", RoleName: auth.RoleEmployee}
	submitAll(t, svc, owner, created.Details, StageSelf, 80)

	if got := countByType(notifier, "EVALUATION_SUPERVISOR1"); got != 0 {
		t.Fatalf("no supervisor-1 configured, got %d supervisor-1 notifications", got)
	}
	if got := countByType(notifier, "EVALUATION_SUPERVISOR2"); got != 1 {
		t.Fatalf("expected the request to skip to supervisor-2, got %d", got)
	}
	// Status still derives purely from detail contents.
	eval, _ := store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if eval.Status != StatusSupervisor1Pending {
		t.Fatalf("expected derived status %s, got %s", StatusSupervisor1Pending, eval.Status)
	}
}

func TestNoSupervisorsWorkflowStalls(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewService(store, notifier)
	seedWorkflow(store, false, false)

	created, err := svc.CreateOrGet(context.Background(), "emp-1", "2024-07")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	owner := auth.UserContext{UserID: "user-1", RoleName: auth.RoleEmployee}
	before := len(notifier.sent)
	submitAll(t, svc, owner, created.Details, StageSelf, 70)

	if len(notifier.sent) != before {
		t.Fatalf("no supervisors configured, expected no notification, got %+v", notifier.sent[before:])
	}
	eval, _ := store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if eval.Status != StatusSupervisor1Pending {
		t.Fatalf("workflow should stall at %s, got %s", StatusSupervisor1Pending, eval.Status)
	}
}

func TestSubmitRejectsOutOfRangeScore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeNotifier{})
	seedWorkflow(store, true, true)

	created, _ := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	owner := auth.UserContext{UserID: "user-1", RoleName: auth.RoleEmployee}

	for _, bad := range []float64{-1, 100.5, 101} {
		if _, err := svc.SubmitDetailScore(context.Background(), owner, created.Details[0].ID, StageSelf, bad); !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("value %v: expected ErrInvalidScore, got %v", bad, err)
		}
	}
	detail, _ := store.DetailByID(context.Background(), created.Details[0].ID)
	if detail.SelfScore != nil {
		t.Fatal("rejected submission must not write a score")
	}
}

func TestSubmitEnforcesAccessPolicy(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeNotifier{})
	seedWorkflow(store, true, true)

	created, _ := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	owner := auth.UserContext{UserID: "user-1", RoleName: auth.RoleEmployee}

	for _, stage := range []Stage{StageSupervisor1, StageSupervisor2} {
		if _, err := svc.SubmitDetailScore(context.Background(), owner, created.Details[0].ID, stage, 50); !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("stage %s: expected ErrAccessDenied for non-privileged owner, got %v", stage, err)
		}
	}

	stranger := auth.UserContext{UserID: "user-unknown", RoleName: auth.RoleEmployee}
	if _, err := svc.SubmitDetailScore(context.Background(), stranger, created.Details[0].ID, StageSelf, 50); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for foreign record, got %v", err)
	}

	detail, _ := store.DetailByID(context.Background(), created.Details[0].ID)
	if detail.SelfScore != nil || detail.Supervisor1Score != nil || detail.Supervisor2Score != nil {
		t.Fatal("denied submissions must not write any score")
	}
}

func TestFinalizePersistsBlendedScore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeNotifier{})
	seedWorkflow(store, true, true)

	created, _ := svc.CreateOrGet(context.Background(), "emp-1", "2024-05")
	head := auth.UserContext{UserID: "user-s2", RoleName: auth.RoleDepartmentHead}
	submitAll(t, svc, head, created.Details, StageSelf, 100)
	submitAll(t, svc, head, created.Details, StageSupervisor1, 80)

	eval, err := svc.Finalize(context.Background(), created.Evaluation.ID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	// Stages at 100 and 80, supervisor-2 untouched and excluded: mean is 90.
	if !almostEqual(eval.Score, 90) {
		t.Fatalf("expected blended score 90, got %v", eval.Score)
	}
	stored, _ := store.EvaluationByID(context.Background(), created.Evaluation.ID)
	if !almostEqual(stored.Score, 90) {
		t.Fatalf("blended score not persisted, got %v", stored.Score)
	}
}

func TestSupervisor2PercentageWithoutEvaluation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeNotifier{})
	seedWorkflow(store, true, true)

	pct, err := svc.Supervisor2Percentage(context.Background(), "emp-1", "2030-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pct != 0 {
		t.Fatalf("expected 0 for a missing evaluation, got %v", pct)
	}
}

func countByType(notifier *fakeNotifier, ntype string) int {
	count := 0
	for _, sent := range notifier.sent {
		if sent.Type == ntype {
			count++
		}
	}
	return count
}
