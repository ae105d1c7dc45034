package payroll

import "context"

type StoreAPI interface {
	// InsertDetail relies on the (employee_id, month, year) unique constraint
	// and reports false when the row already existed.
	InsertDetail(ctx context.Context, employeeID string, month, year int) (bool, error)
	FindDetail(ctx context.Context, employeeID string, month, year int) (Detail, error)
	DetailByID(ctx context.Context, payrollID string) (Detail, error)
	UpdateDetail(ctx context.Context, detail Detail) error
	EmployeeRef(ctx context.Context, employeeID string) (EmployeeRef, error)
	ListRegister(ctx context.Context, month, year int) ([]RegisterRow, error)
}
