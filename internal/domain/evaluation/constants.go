package evaluation

// Stage is one scoring pass over an evaluation's detail rows.
type Stage string

const (
	StageSelf        Stage = "self"
	StageSupervisor1 Stage = "supervisor1"
	StageSupervisor2 Stage = "supervisor2"
)

// Persisted status values. The stored status is an optimization; the source
// of truth is DeriveStatus over the detail rows, and the two must agree.
const (
	StatusSelfOrSupervisor1Pending = "SELF_OR_SUPERVISOR1_PENDING"
	StatusSupervisor1Pending       = "SUPERVISOR1_PENDING"
	StatusSupervisor2Pending       = "SUPERVISOR2_PENDING"
	StatusCompleted                = "COMPLETED"
)

func ValidStage(stage Stage) bool {
	switch stage {
	case StageSelf, StageSupervisor1, StageSupervisor2:
		return true
	}
	return false
}
