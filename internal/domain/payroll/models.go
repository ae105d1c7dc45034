package payroll

import "time"

// Detail is one employee's payroll record for one (month, year) cycle.
// Amounts are whole currency units; the statutory deduction fields are raw
// inputs, kpiDeduction and leaveDeduction are derived.
type Detail struct {
	ID                    string    `json:"id"`
	EmployeeID            string    `json:"employeeId"`
	Month                 int       `json:"month"`
	Year                  int       `json:"year"`
	BaseSalary            float64   `json:"baseSalary"`
	KPIBonus              float64   `json:"kpiBonus"`
	PositionAllowance     float64   `json:"positionAllowance"`
	OtherAllowances       float64   `json:"otherAllowances"`
	SocialInsurance       float64   `json:"socialInsurance"`
	HealthInsurance       float64   `json:"healthInsurance"`
	UnemploymentInsurance float64   `json:"unemploymentInsurance"`
	PersonalIncomeTax     float64   `json:"personalIncomeTax"`
	KPIDeduction          float64   `json:"kpiDeduction"`
	LeaveDeduction        float64   `json:"leaveDeduction"`
	WorkDays              float64   `json:"workDays"`
	LeaveDays             float64   `json:"leaveDays"`
	OvertimeHours         float64   `json:"overtimeHours"`
	TotalIncome           float64   `json:"totalIncome"`
	TotalDeductions       float64   `json:"totalDeductions"`
	NetSalary             float64   `json:"netSalary"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// View is the editable payroll surface: the detail plus the supervisor-2
// evaluation percentage snapshotted when the view was opened.
type View struct {
	Detail                Detail  `json:"detail"`
	Supervisor2Percentage float64 `json:"supervisor2Percentage"`
}

// RegisterRow is one line of the monthly payroll register export.
type RegisterRow struct {
	EmployeeCode    string
	EmployeeEmail   string
	BaseSalary      float64
	KPIBonus        float64
	TotalIncome     float64
	TotalDeductions float64
	NetSalary       float64
}

// EmployeeRef is the employee identity block printed on a payslip.
type EmployeeRef struct {
	EmployeeCode string
	Email        string
	PositionName string
}
