package types

// Stage names the pipeline stage an error originated in, so callers can
// render a precise message and tests can assert on attribution.
type Stage string

// Pipeline stages.
const (
	StageBuild    Stage = "Build"
	StageGenerate Stage = "Generate"
	StageValidate Stage = "Validate"
	StageDispatch Stage = "Dispatch"
)

// StagedError is implemented by every error surfaced from a pipeline
// stage.
type StagedError interface {
	error
	Stage() Stage
}

// StageError attaches a stage to an error that does not carry one of
// its own.
type StageError struct {
	ErrStage Stage
	Err      error
}

func (e *StageError) Error() string {
	return string(e.ErrStage) + " stage: " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// Stage implements StagedError.
func (e *StageError) Stage() Stage { return e.ErrStage }
