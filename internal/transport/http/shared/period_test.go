package shared

import "testing"

func TestParsePeriod(t *testing.T) {
	year, month, err := ParsePeriod("2024-05")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if year != 2024 || month != 5 {
		t.Fatalf("expected 2024-05, got %d-%d", year, month)
	}
}

func TestParsePeriodRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "2024", "2024-13", "2024-00", "24-05", "2024-5", "2024/05", "abcd-ef"} {
		if _, _, err := ParsePeriod(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
