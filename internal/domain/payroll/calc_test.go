package payroll

import "testing"

func TestComputeDeductionsLeave(t *testing.T) {
	// 5,000,000 / 26 ≈ 192,307.69 per day; two days round to 384,615.
	_, leaveDeduction := ComputeDeductions(5_000_000, 0, 2, 0)
	if leaveDeduction != 384_615 {
		t.Fatalf("expected leave deduction 384615, got %v", leaveDeduction)
	}
}

func TestComputeDeductionsKPI(t *testing.T) {
	kpiDeduction, _ := ComputeDeductions(0, 1_000_000, 0, 80)
	if kpiDeduction != 200_000 {
		t.Fatalf("expected kpi deduction 200000, got %v", kpiDeduction)
	}
}

func TestComputeDeductionsZeroInputs(t *testing.T) {
	kpiDeduction, leaveDeduction := ComputeDeductions(0, 0, 3, 50)
	if kpiDeduction != 0 || leaveDeduction != 0 {
		t.Fatalf("expected both zero, got kpi=%v leave=%v", kpiDeduction, leaveDeduction)
	}

	kpiDeduction, leaveDeduction = ComputeDeductions(5_000_000, 1_000_000, 0, 100)
	if kpiDeduction != 0 {
		t.Fatalf("full evaluation percentage should earn the whole bonus, got %v", kpiDeduction)
	}
	if leaveDeduction != 0 {
		t.Fatalf("no leave days means no leave deduction, got %v", leaveDeduction)
	}
}

func TestComputeDeductionsNoEvaluation(t *testing.T) {
	// With no supervisor-2 percentage on file the whole bonus is withheld.
	kpiDeduction, _ := ComputeDeductions(0, 1_000_000, 0, 0)
	if kpiDeduction != 1_000_000 {
		t.Fatalf("expected full withholding 1000000, got %v", kpiDeduction)
	}
}

func TestRecomputeTotals(t *testing.T) {
	detail := Detail{
		BaseSalary:            5_000_000,
		KPIBonus:              1_000_000,
		PositionAllowance:     500_000,
		OtherAllowances:       200_000,
		SocialInsurance:       400_000,
		HealthInsurance:       75_000,
		UnemploymentInsurance: 50_000,
		PersonalIncomeTax:     120_000,
		LeaveDays:             2,
	}
	detail = Recompute(detail, 80)

	if detail.KPIDeduction != 200_000 {
		t.Fatalf("expected kpi deduction 200000, got %v", detail.KPIDeduction)
	}
	if detail.LeaveDeduction != 384_615 {
		t.Fatalf("expected leave deduction 384615, got %v", detail.LeaveDeduction)
	}
	if detail.TotalIncome != 6_700_000 {
		t.Fatalf("expected total income 6700000, got %v", detail.TotalIncome)
	}
	wantDeductions := 400_000.0 + 75_000 + 50_000 + 120_000 + 200_000 + 384_615
	if detail.TotalDeductions != wantDeductions {
		t.Fatalf("expected total deductions %v, got %v", wantDeductions, detail.TotalDeductions)
	}
	if detail.NetSalary != detail.TotalIncome-detail.TotalDeductions {
		t.Fatalf("net salary mismatch: %v", detail.NetSalary)
	}
}
