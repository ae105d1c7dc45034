package evaluation

import "testing"

func score(v float64) *float64 {
	return &v
}

func TestDeriveStatusProgression(t *testing.T) {
	details := []Detail{
		{ID: "d1", Weight: 60},
		{ID: "d2", Weight: 40},
	}

	if got := DeriveStatus(details); got != StatusSelfOrSupervisor1Pending {
		t.Fatalf("expected %s, got %s", StatusSelfOrSupervisor1Pending, got)
	}

	details[0].SelfScore = score(50)
	if got := DeriveStatus(details); got != StatusSelfOrSupervisor1Pending {
		t.Fatalf("partial self stage should not advance, got %s", got)
	}

	details[1].SelfScore = score(40)
	if got := DeriveStatus(details); got != StatusSupervisor1Pending {
		t.Fatalf("expected %s, got %s", StatusSupervisor1Pending, got)
	}

	details[0].Supervisor1Score = score(55)
	details[1].Supervisor1Score = score(35)
	if got := DeriveStatus(details); got != StatusSupervisor2Pending {
		t.Fatalf("expected %s, got %s", StatusSupervisor2Pending, got)
	}

	details[0].Supervisor2Score = score(58)
	details[1].Supervisor2Score = score(38)
	if got := DeriveStatus(details); got != StatusCompleted {
		t.Fatalf("expected %s, got %s", StatusCompleted, got)
	}
}

func TestDeriveStatusZeroScoresCountAsScored(t *testing.T) {
	details := []Detail{
		{ID: "d1", Weight: 100, SelfScore: score(0)},
	}
	if got := DeriveStatus(details); got != StatusSupervisor1Pending {
		t.Fatalf("an explicit zero is a submitted score, got %s", got)
	}
}

func TestStageCompleteEmptyDetails(t *testing.T) {
	if StageComplete(nil, StageSelf) {
		t.Fatal("no detail rows must never count as a complete stage")
	}
}
