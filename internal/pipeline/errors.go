package pipeline

import "fmt"

// Stage names a pipeline stage.
type Stage string

const (
	StageBundle      Stage = "bundle"
	StagePlaceholder Stage = "placeholder"
	StageManifest    Stage = "manifest"
	StageLicense     Stage = "license"
)

// StageError records which stage failed. The cause stays reachable through
// errors.Is and errors.As.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
