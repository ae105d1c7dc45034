package payroll

import (
	"context"
	"errors"
	"fmt"
)

// EvaluationSource is payroll's read-only view of the evaluation subsystem.
// The dependency runs one way: payroll reads percentages, never the reverse.
type EvaluationSource interface {
	Supervisor2Percentage(ctx context.Context, employeeID, period string) (float64, error)
}

type Service struct {
	store       StoreAPI
	evaluations EvaluationSource
	StorageDir  string
}

func NewService(store StoreAPI, evaluations EvaluationSource, storageDir string) *Service {
	return &Service{store: store, evaluations: evaluations, StorageDir: storageDir}
}

// Period renders the evaluation period key for a payroll month.
func Period(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func validPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}

// GetOrCreate returns the payroll detail for (employeeID, month, year),
// creating a defaulted row on first request. The supervisor-2 percentage is
// snapshotted here, once per opened view, and reused on save.
func (s *Service) GetOrCreate(ctx context.Context, employeeID string, month, year int) (View, error) {
	if !validPeriod(month, year) {
		return View{}, ErrInvalidPeriod
	}
	if _, err := s.store.EmployeeRef(ctx, employeeID); err != nil {
		return View{}, err
	}

	detail, err := s.store.FindDetail(ctx, employeeID, month, year)
	if errors.Is(err, ErrNotFound) {
		if _, err := s.store.InsertDetail(ctx, employeeID, month, year); err != nil {
			return View{}, err
		}
		detail, err = s.store.FindDetail(ctx, employeeID, month, year)
		if err != nil {
			return View{}, err
		}
	} else if err != nil {
		return View{}, err
	}

	pct, err := s.evaluations.Supervisor2Percentage(ctx, employeeID, Period(month, year))
	if err != nil {
		return View{}, err
	}
	return View{Detail: detail, Supervisor2Percentage: pct}, nil
}

// SaveInput carries the editable payroll fields; everything derived is
// recomputed server-side on save.
type SaveInput struct {
	BaseSalary            float64 `json:"baseSalary"`
	KPIBonus              float64 `json:"kpiBonus"`
	PositionAllowance     float64 `json:"positionAllowance"`
	OtherAllowances       float64 `json:"otherAllowances"`
	SocialInsurance       float64 `json:"socialInsurance"`
	HealthInsurance       float64 `json:"healthInsurance"`
	UnemploymentInsurance float64 `json:"unemploymentInsurance"`
	PersonalIncomeTax     float64 `json:"personalIncomeTax"`
	WorkDays              float64 `json:"workDays"`
	LeaveDays             float64 `json:"leaveDays"`
	OvertimeHours         float64 `json:"overtimeHours"`
}

func (in SaveInput) validate() error {
	amounts := []float64{
		in.BaseSalary, in.KPIBonus, in.PositionAllowance, in.OtherAllowances,
		in.SocialInsurance, in.HealthInsurance, in.UnemploymentInsurance, in.PersonalIncomeTax,
		in.WorkDays, in.LeaveDays, in.OvertimeHours,
	}
	for _, amount := range amounts {
		if amount < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}

// Save persists the edited payroll detail with deductions and totals
// recomputed against the supervisor-2 percentage for the same period.
func (s *Service) Save(ctx context.Context, payrollID string, in SaveInput) (View, error) {
	if err := in.validate(); err != nil {
		return View{}, err
	}

	detail, err := s.store.DetailByID(ctx, payrollID)
	if err != nil {
		return View{}, err
	}

	detail.BaseSalary = in.BaseSalary
	detail.KPIBonus = in.KPIBonus
	detail.PositionAllowance = in.PositionAllowance
	detail.OtherAllowances = in.OtherAllowances
	detail.SocialInsurance = in.SocialInsurance
	detail.HealthInsurance = in.HealthInsurance
	detail.UnemploymentInsurance = in.UnemploymentInsurance
	detail.PersonalIncomeTax = in.PersonalIncomeTax
	detail.WorkDays = in.WorkDays
	detail.LeaveDays = in.LeaveDays
	detail.OvertimeHours = in.OvertimeHours

	pct, err := s.evaluations.Supervisor2Percentage(ctx, detail.EmployeeID, Period(detail.Month, detail.Year))
	if err != nil {
		return View{}, err
	}
	detail = Recompute(detail, pct)

	if err := s.store.UpdateDetail(ctx, detail); err != nil {
		return View{}, err
	}
	return View{Detail: detail, Supervisor2Percentage: pct}, nil
}

func (s *Service) Get(ctx context.Context, payrollID string) (Detail, error) {
	return s.store.DetailByID(ctx, payrollID)
}
