package notifications

const (
	TypeEvaluation            = "EVALUATION"
	TypeEvaluationSupervisor1 = "EVALUATION_SUPERVISOR1"
	TypeEvaluationSupervisor2 = "EVALUATION_SUPERVISOR2"
	TypeTask                  = "TASK"
)
