package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const detailColumns = `
  id, employee_id, month, year,
  base_salary, kpi_bonus, position_allowance, other_allowances,
  social_insurance, health_insurance, unemployment_insurance, personal_income_tax,
  kpi_deduction, leave_deduction, work_days, leave_days, overtime_hours,
  total_income, total_deductions, net_salary, created_at, updated_at`

func scanDetail(row pgx.Row) (Detail, error) {
	var d Detail
	err := row.Scan(&d.ID, &d.EmployeeID, &d.Month, &d.Year,
		&d.BaseSalary, &d.KPIBonus, &d.PositionAllowance, &d.OtherAllowances,
		&d.SocialInsurance, &d.HealthInsurance, &d.UnemploymentInsurance, &d.PersonalIncomeTax,
		&d.KPIDeduction, &d.LeaveDeduction, &d.WorkDays, &d.LeaveDays, &d.OvertimeHours,
		&d.TotalIncome, &d.TotalDeductions, &d.NetSalary, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, ErrNotFound
	}
	if err != nil {
		return Detail{}, err
	}
	return d, nil
}

func (s *Store) InsertDetail(ctx context.Context, employeeID string, month, year int) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_details (employee_id, month, year)
    VALUES ($1, $2, $3)
    ON CONFLICT (employee_id, month, year) DO NOTHING
  `, employeeID, month, year)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) FindDetail(ctx context.Context, employeeID string, month, year int) (Detail, error) {
	return scanDetail(s.DB.QueryRow(ctx,
		"SELECT"+detailColumns+" FROM payroll_details WHERE employee_id = $1 AND month = $2 AND year = $3",
		employeeID, month, year))
}

func (s *Store) DetailByID(ctx context.Context, payrollID string) (Detail, error) {
	return scanDetail(s.DB.QueryRow(ctx,
		"SELECT"+detailColumns+" FROM payroll_details WHERE id = $1", payrollID))
}

func (s *Store) UpdateDetail(ctx context.Context, d Detail) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_details SET
      base_salary = $1, kpi_bonus = $2, position_allowance = $3, other_allowances = $4,
      social_insurance = $5, health_insurance = $6, unemployment_insurance = $7, personal_income_tax = $8,
      kpi_deduction = $9, leave_deduction = $10, work_days = $11, leave_days = $12, overtime_hours = $13,
      total_income = $14, total_deductions = $15, net_salary = $16, updated_at = now()
    WHERE id = $17
  `, d.BaseSalary, d.KPIBonus, d.PositionAllowance, d.OtherAllowances,
		d.SocialInsurance, d.HealthInsurance, d.UnemploymentInsurance, d.PersonalIncomeTax,
		d.KPIDeduction, d.LeaveDeduction, d.WorkDays, d.LeaveDays, d.OvertimeHours,
		d.TotalIncome, d.TotalDeductions, d.NetSalary, d.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EmployeeRef(ctx context.Context, employeeID string) (EmployeeRef, error) {
	var ref EmployeeRef
	err := s.DB.QueryRow(ctx, `
    SELECT e.employee_code, u.email, p.name
    FROM employees e
    JOIN users u ON e.user_id = u.id
    JOIN positions p ON e.position_id = p.id
    WHERE e.id = $1
  `, employeeID).Scan(&ref.EmployeeCode, &ref.Email, &ref.PositionName)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, ErrNotFound
	}
	if err != nil {
		return EmployeeRef{}, err
	}
	return ref, nil
}

func (s *Store) ListRegister(ctx context.Context, month, year int) ([]RegisterRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.employee_code, u.email, d.base_salary, d.kpi_bonus,
           d.total_income, d.total_deductions, d.net_salary
    FROM payroll_details d
    JOIN employees e ON d.employee_id = e.id
    JOIN users u ON e.user_id = u.id
    WHERE d.month = $1 AND d.year = $2
    ORDER BY e.employee_code
  `, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var register []RegisterRow
	for rows.Next() {
		var row RegisterRow
		if err := rows.Scan(&row.EmployeeCode, &row.EmployeeEmail, &row.BaseSalary, &row.KPIBonus,
			&row.TotalIncome, &row.TotalDeductions, &row.NetSalary); err != nil {
			return nil, err
		}
		register = append(register, row)
	}
	return register, rows.Err()
}
