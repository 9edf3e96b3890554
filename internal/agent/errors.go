package agent

import "fmt"

// Stage identifies where in the answer flow an error originated.
type Stage string

const (
	StageConfig    Stage = "config"
	StageTranslate Stage = "translate"
	StageExecute   Stage = "execute"
	StageInterpret Stage = "interpret"
)

// StageError tags an underlying error with its originating stage so failures
// can be diagnosed without retry or recovery logic.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
