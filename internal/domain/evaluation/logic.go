package evaluation

// StageScore returns the detail's score for the given stage, or nil when the
// stage has not been scored on this row.
func StageScore(detail Detail, stage Stage) *float64 {
	switch stage {
	case StageSelf:
		return detail.SelfScore
	case StageSupervisor1:
		return detail.Supervisor1Score
	case StageSupervisor2:
		return detail.Supervisor2Score
	}
	return nil
}

// StageComplete reports whether every detail row has a score for the stage.
// Completion is decided by re-scanning all sibling rows rather than by a
// counter, so the answer always matches the stored detail contents.
func StageComplete(details []Detail, stage Stage) bool {
	if len(details) == 0 {
		return false
	}
	for _, detail := range details {
		if StageScore(detail, stage) == nil {
			return false
		}
	}
	return true
}

// DeriveStatus computes the workflow status from detail contents alone. The
// persisted status column must always equal this value.
func DeriveStatus(details []Detail) string {
	switch {
	case !StageComplete(details, StageSelf):
		return StatusSelfOrSupervisor1Pending
	case !StageComplete(details, StageSupervisor1):
		return StatusSupervisor1Pending
	case !StageComplete(details, StageSupervisor2):
		return StatusSupervisor2Pending
	}
	return StatusCompleted
}
