package evaluation

import "context"

type StoreAPI interface {
	EmployeeWithPosition(ctx context.Context, employeeID string) (Employee, error)
	EmployeeIDByUserID(ctx context.Context, userID string) (string, error)
	PositionResponsibilities(ctx context.Context, positionID string) ([]Responsibility, error)

	// InsertEvaluation relies on the (employee_id, period) unique constraint:
	// it reports false without error when another call won the insert race.
	InsertEvaluation(ctx context.Context, employeeID, period, status string) (bool, error)
	FindEvaluation(ctx context.Context, employeeID, period string) (Evaluation, error)
	EvaluationByID(ctx context.Context, evaluationID string) (Evaluation, error)
	ListEvaluationsByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error)

	InsertDetails(ctx context.Context, evaluationID string, responsibilityIDs []string) error
	ListDetails(ctx context.Context, evaluationID string) ([]Detail, error)
	DetailByID(ctx context.Context, detailID string) (Detail, error)
	UpdateDetailScore(ctx context.Context, detailID string, stage Stage, value float64) error

	UpdateEvaluationStatus(ctx context.Context, evaluationID, status string) error
	UpdateEvaluationScore(ctx context.Context, evaluationID string, score float64) error
}
