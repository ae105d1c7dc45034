package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bizman/internal/domain/auth"
	"bizman/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail != "" {
		if err := ensureUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, auth.RoleAdmin); err != nil {
			return err
		}
	}

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, pool); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, role string) error {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, status)
    VALUES ($1, $2, $3, 'active')
  `, email, hash, role)
	return err
}

func seedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	var positionID string
	err := pool.QueryRow(ctx, "SELECT id FROM positions WHERE name = $1", "Accountant").Scan(&positionID)
	if err != nil {
		if err := pool.QueryRow(ctx,
			"INSERT INTO positions (name) VALUES ($1) RETURNING id", "Accountant",
		).Scan(&positionID); err != nil {
			return err
		}

		responsibilities := []struct {
			title  string
			weight float64
		}{
			{"Monthly bookkeeping", 40},
			{"Tax filings", 30},
			{"Debt reconciliation", 20},
			{"Supply request review", 10},
		}
		for _, resp := range responsibilities {
			if _, err := pool.Exec(ctx, `
        INSERT INTO position_responsibilities (position_id, title, description, weight)
        VALUES ($1, $2, '', $3)
      `, positionID, resp.title, resp.weight); err != nil {
				return err
			}
		}
	}

	demoUsers := []struct {
		email string
		role  string
	}{
		{"lead@demo.local", auth.RoleTeamLead},
		{"head@demo.local", auth.RoleDepartmentHead},
		{"staff@demo.local", auth.RoleEmployee},
	}
	userIDs := map[string]string{}
	for _, demo := range demoUsers {
		if err := ensureUser(ctx, pool, demo.email, "ChangeMe123!", demo.role); err != nil {
			return err
		}
		var id string
		if err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", demo.email).Scan(&id); err != nil {
			return err
		}
		userIDs[demo.email] = id
	}

	employees := []struct {
		code       string
		email      string
		sup1, sup2 string
	}{
		{"EMP-001", "staff@demo.local", "lead@demo.local", "head@demo.local"},
		{"EMP-002", "lead@demo.local", "head@demo.local", ""},
		{"EMP-003", "head@demo.local", "", ""},
	}
	for _, emp := range employees {
		var existing string
		if err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE employee_code = $1", emp.code).Scan(&existing); err == nil {
			continue
		}

		var sup1, sup2 any
		if emp.sup1 != "" {
			sup1 = userIDs[emp.sup1]
		}
		if emp.sup2 != "" {
			sup2 = userIDs[emp.sup2]
		}
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (employee_code, position_id, user_id, supervisor1_user_id, supervisor2_user_id)
      VALUES ($1, $2, $3, $4, $5)
    `, emp.code, positionID, userIDs[emp.email], sup1, sup2); err != nil {
			return fmt.Errorf("seed employee %s: %w", emp.code, err)
		}
	}
	return nil
}
