package evaluation

import "time"

// Evaluation is the one-per-(employee, period) workflow record. Period is
// always a "YYYY-MM" string.
type Evaluation struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Period     string    `json:"period"`
	Status     string    `json:"status"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Detail is the per-responsibility score row. The weight is denormalized from
// the responsibility at read time; detail rows themselves are frozen to the
// responsibility set the position had when the evaluation was created.
type Detail struct {
	ID               string   `json:"id"`
	EvaluationID     string   `json:"evaluationId"`
	ResponsibilityID string   `json:"positionResponsibilityId"`
	Title            string   `json:"title"`
	Weight           float64  `json:"weight"`
	SelfScore        *float64 `json:"selfScore"`
	Supervisor1Score *float64 `json:"supervisorScore1"`
	Supervisor2Score *float64 `json:"supervisorScore2"`
}

// Employee carries the slice of the employee record the workflow needs: the
// position for detail creation and the supervisor chain for notifications.
type Employee struct {
	ID                string
	EmployeeCode      string
	PositionID        string
	UserID            string
	Supervisor1UserID *string
	Supervisor2UserID *string
}

type Responsibility struct {
	ID     string
	Title  string
	Weight float64
}
