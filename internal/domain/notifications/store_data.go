package notifications

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateNotification(ctx context.Context, employeeID, ntype, title, message string, evaluationID, period, taskID *string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (employee_id, type, title, message, evaluation_id, period, task_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, employeeID, ntype, title, message, evaluationID, period, taskID)
	return err
}

func (s *Store) EmployeeEmail(ctx context.Context, employeeID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, `
    SELECT u.email
    FROM employees e
    JOIN users u ON e.user_id = u.id
    WHERE e.id = $1
  `, employeeID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) ListNotifications(ctx context.Context, employeeID string, limit, offset int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, type, title, message, evaluation_id, period, task_id, is_read, created_at, updated_at
    FROM notifications
    WHERE employee_id = $1
    ORDER BY created_at DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Title, &n.Message, &n.EvaluationID, &n.Period, &n.TaskID, &n.IsRead, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) CountUnread(ctx context.Context, employeeID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM notifications WHERE employee_id = $1 AND is_read = false", employeeID,
	).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET is_read = true, updated_at = now()
    WHERE employee_id = $1 AND id = $2
  `, employeeID, notificationID)
	return err
}

func (s *Store) MarkAllRead(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET is_read = true, updated_at = now()
    WHERE employee_id = $1 AND is_read = false
  `, employeeID)
	return err
}
