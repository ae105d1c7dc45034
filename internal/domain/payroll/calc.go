package payroll

import "math"

// The leave deduction assumes a 26-day standard working month.
const standardWorkDays = 26

// ComputeDeductions derives the two evaluation-dependent deduction amounts.
// The KPI bonus is earned in proportion to the supervisor-2 evaluation
// percentage; the deduction is the unearned remainder. Both results are
// rounded to whole currency units.
func ComputeDeductions(baseSalary, kpiBonus, leaveDays, supervisor2Percentage float64) (kpiDeduction, leaveDeduction float64) {
	if kpiBonus > 0 {
		kpiDeduction = math.Round(kpiBonus * (100 - supervisor2Percentage) / 100)
	}
	if baseSalary > 0 && leaveDays > 0 {
		leaveDeduction = math.Round(baseSalary / standardWorkDays * leaveDays)
	}
	return kpiDeduction, leaveDeduction
}

// Recompute fills the derived fields of a payroll detail from its inputs and
// the supervisor-2 percentage snapshot.
func Recompute(detail Detail, supervisor2Percentage float64) Detail {
	detail.KPIDeduction, detail.LeaveDeduction = ComputeDeductions(
		detail.BaseSalary, detail.KPIBonus, detail.LeaveDays, supervisor2Percentage)

	detail.TotalIncome = detail.BaseSalary + detail.KPIBonus + detail.PositionAllowance + detail.OtherAllowances
	detail.TotalDeductions = detail.SocialInsurance + detail.HealthInsurance + detail.UnemploymentInsurance +
		detail.PersonalIncomeTax + detail.KPIDeduction + detail.LeaveDeduction
	detail.NetSalary = detail.TotalIncome - detail.TotalDeductions
	return detail
}
