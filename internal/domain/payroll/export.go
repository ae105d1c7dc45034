package payroll

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportRegister writes the monthly payroll register as an .xlsx workbook and
// returns the written file path.
func (s *Service) ExportRegister(ctx context.Context, month, year int) (string, error) {
	if !validPeriod(month, year) {
		return "", ErrInvalidPeriod
	}
	register, err := s.store.ListRegister(ctx, month, year)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	f.SetSheetName("Sheet1", sheet)
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "G", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Payroll register %s", Period(month, year)))
	f.MergeCell(sheet, "A1", "G1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Code", "Email", "Base salary", "KPI bonus", "Total income", "Total deductions", "Net salary"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	var totalNet float64
	for i, row := range register {
		rowNum := i + 3
		values := []any{row.EmployeeCode, row.EmployeeEmail, row.BaseSalary, row.KPIBonus,
			row.TotalIncome, row.TotalDeductions, row.NetSalary}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(sheet, cell, value)
		}
		totalNet += row.NetSalary
	}

	totalRow := len(register) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), totalNet)

	dir := filepath.Join(s.StorageDir, "exports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, fmt.Sprintf("payroll-%s.xlsx", Period(month, year)))
	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
