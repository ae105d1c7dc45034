package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// GeneratePayslipPDF renders the payslip for a saved payroll detail and
// returns the written file path.
func (s *Service) GeneratePayslipPDF(ctx context.Context, payrollID string) (string, error) {
	detail, err := s.store.DetailByID(ctx, payrollID)
	if err != nil {
		return "", err
	}
	ref, err := s.store.EmployeeRef(ctx, detail.EmployeeID)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.StorageDir, "payslips")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, detail.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", ref.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", ref.PositionName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", ref.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", Period(detail.Month, detail.Year)))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %.0f", detail.BaseSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("KPI bonus: %.0f", detail.KPIBonus))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total income: %.0f", detail.TotalIncome))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("KPI deduction: %.0f", detail.KPIDeduction))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Leave deduction: %.0f", detail.LeaveDeduction))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.0f", detail.TotalDeductions))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net salary: %.0f", detail.NetSalary))

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
