package evaluation

import "errors"

var (
	ErrNotFound     = errors.New("evaluation record not found")
	ErrInvalidScore = errors.New("score must be between 0 and 100")
	ErrInvalidStage = errors.New("unknown scoring stage")
	ErrAccessDenied = errors.New("access denied for this evaluation")
)
