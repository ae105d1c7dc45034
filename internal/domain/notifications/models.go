package notifications

import "time"

type Notification struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	EvaluationID *string   `json:"evaluationId,omitempty"`
	Period       *string   `json:"period,omitempty"`
	TaskID       *string   `json:"taskId,omitempty"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
