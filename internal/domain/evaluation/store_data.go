package evaluation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeWithPosition(ctx context.Context, employeeID string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_code, position_id, user_id, supervisor1_user_id, supervisor2_user_id
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&emp.ID, &emp.EmployeeCode, &emp.PositionID, &emp.UserID, &emp.Supervisor1UserID, &emp.Supervisor2UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Store) EmployeeIDByUserID(ctx context.Context, userID string) (string, error) {
	var employeeID string
	err := s.DB.QueryRow(ctx, "SELECT id FROM employees WHERE user_id = $1", userID).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return employeeID, nil
}

func (s *Store) PositionResponsibilities(ctx context.Context, positionID string) ([]Responsibility, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, weight
    FROM position_responsibilities
    WHERE position_id = $1
    ORDER BY weight DESC, title
  `, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responsibilities []Responsibility
	for rows.Next() {
		var r Responsibility
		if err := rows.Scan(&r.ID, &r.Title, &r.Weight); err != nil {
			return nil, err
		}
		responsibilities = append(responsibilities, r)
	}
	return responsibilities, rows.Err()
}

func (s *Store) InsertEvaluation(ctx context.Context, employeeID, period, status string) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO evaluations (employee_id, period, status, score)
    VALUES ($1, $2, $3, 0)
    ON CONFLICT (employee_id, period) DO NOTHING
  `, employeeID, period, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) FindEvaluation(ctx context.Context, employeeID, period string) (Evaluation, error) {
	var eval Evaluation
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, period, status, score, created_at, updated_at
    FROM evaluations
    WHERE employee_id = $1 AND period = $2
  `, employeeID, period).Scan(&eval.ID, &eval.EmployeeID, &eval.Period, &eval.Status, &eval.Score, &eval.CreatedAt, &eval.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	return eval, nil
}

func (s *Store) EvaluationByID(ctx context.Context, evaluationID string) (Evaluation, error) {
	var eval Evaluation
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, period, status, score, created_at, updated_at
    FROM evaluations
    WHERE id = $1
  `, evaluationID).Scan(&eval.ID, &eval.EmployeeID, &eval.Period, &eval.Status, &eval.Score, &eval.CreatedAt, &eval.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Evaluation{}, ErrNotFound
	}
	if err != nil {
		return Evaluation{}, err
	}
	return eval, nil
}

func (s *Store) ListEvaluationsByEmployee(ctx context.Context, employeeID string) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, period, status, score, created_at, updated_at
    FROM evaluations
    WHERE employee_id = $1
    ORDER BY period DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		var eval Evaluation
		if err := rows.Scan(&eval.ID, &eval.EmployeeID, &eval.Period, &eval.Status, &eval.Score, &eval.CreatedAt, &eval.UpdatedAt); err != nil {
			return nil, err
		}
		evals = append(evals, eval)
	}
	return evals, rows.Err()
}

func (s *Store) InsertDetails(ctx context.Context, evaluationID string, responsibilityIDs []string) error {
	batch := &pgx.Batch{}
	for _, responsibilityID := range responsibilityIDs {
		batch.Queue(`
      INSERT INTO evaluation_details (evaluation_id, position_responsibility_id)
      VALUES ($1, $2)
      ON CONFLICT (evaluation_id, position_responsibility_id) DO NOTHING
    `, evaluationID, responsibilityID)
	}
	results := s.DB.SendBatch(ctx, batch)
	defer results.Close()
	for range responsibilityIDs {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListDetails(ctx context.Context, evaluationID string) ([]Detail, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.evaluation_id, d.position_responsibility_id, r.title, r.weight,
           d.self_score, d.supervisor_score1, d.supervisor_score2
    FROM evaluation_details d
    JOIN position_responsibilities r ON d.position_responsibility_id = r.id
    WHERE d.evaluation_id = $1
    ORDER BY r.weight DESC, r.title
  `, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var detail Detail
		if err := rows.Scan(&detail.ID, &detail.EvaluationID, &detail.ResponsibilityID, &detail.Title, &detail.Weight,
			&detail.SelfScore, &detail.Supervisor1Score, &detail.Supervisor2Score); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (s *Store) DetailByID(ctx context.Context, detailID string) (Detail, error) {
	var detail Detail
	err := s.DB.QueryRow(ctx, `
    SELECT d.id, d.evaluation_id, d.position_responsibility_id, r.title, r.weight,
           d.self_score, d.supervisor_score1, d.supervisor_score2
    FROM evaluation_details d
    JOIN position_responsibilities r ON d.position_responsibility_id = r.id
    WHERE d.id = $1
  `, detailID).Scan(&detail.ID, &detail.EvaluationID, &detail.ResponsibilityID, &detail.Title, &detail.Weight,
		&detail.SelfScore, &detail.Supervisor1Score, &detail.Supervisor2Score)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	if err != nil {
		return Detail{}, err
	}
	return detail, nil
}

func (s *Store) UpdateDetailScore(ctx context.Context, detailID string, stage Stage, value float64) error {
	column, err := stageColumn(stage)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx,
		fmt.Sprintf("UPDATE evaluation_details SET %s = $1, updated_at = now() WHERE id = $2", column),
		value, detailID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateEvaluationStatus(ctx context.Context, evaluationID, status string) error {
	_, err := s.DB.Exec(ctx,
		"UPDATE evaluations SET status = $1, updated_at = now() WHERE id = $2",
		status, evaluationID)
	return err
}

func (s *Store) UpdateEvaluationScore(ctx context.Context, evaluationID string, score float64) error {
	_, err := s.DB.Exec(ctx,
		"UPDATE evaluations SET score = $1, updated_at = now() WHERE id = $2",
		score, evaluationID)
	return err
}

// stageColumn maps a stage to its column through a closed switch so the score
// update cannot be used to set arbitrary columns.
func stageColumn(stage Stage) (string, error) {
	switch stage {
	case StageSelf:
		return "self_score", nil
	case StageSupervisor1:
		return "supervisor_score1", nil
	case StageSupervisor2:
		return "supervisor_score2", nil
	}
	return "", ErrInvalidStage
}
