package catalog

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

func (s *Store) ListPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM positions ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *Store) CreatePosition(ctx context.Context, name string) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx,
		"INSERT INTO positions (name) VALUES ($1) RETURNING id", name,
	).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListResponsibilities(ctx context.Context, positionID string) ([]PositionResponsibility, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, position_id, title, description, weight
    FROM position_responsibilities
    WHERE position_id = $1
    ORDER BY weight DESC, title
  `, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responsibilities []PositionResponsibility
	for rows.Next() {
		var r PositionResponsibility
		if err := rows.Scan(&r.ID, &r.PositionID, &r.Title, &r.Description, &r.Weight); err != nil {
			return nil, err
		}
		responsibilities = append(responsibilities, r)
	}
	return responsibilities, rows.Err()
}

func (s *Store) CreateResponsibility(ctx context.Context, positionID, title, description string, weight float64) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO position_responsibilities (position_id, title, description, weight)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, positionID, title, description, weight).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
