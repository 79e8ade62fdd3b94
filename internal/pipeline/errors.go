package pipeline

import "fmt"

// StepError reports the step at which a pack run aborted.
type StepError struct {
	// Step is the name of the failed step.
	Step string

	// Err is the underlying failure.
	Err error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}
