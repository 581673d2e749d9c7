package models

// StepResult records the outcome of one fallible pipeline step.
type StepResult struct {
	// Step names the step, e.g. "auto_filter".
	Step string `json:"step"`
	// Skipped is true when the step degraded to a no-op.
	Skipped bool `json:"skipped"`
	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`
}

// Applied returns a successful result for step.
func Applied(step string) StepResult {
	return StepResult{Step: step}
}

// Skipped returns a skipped result for step with the given reason.
func Skipped(step string, reason error) StepResult {
	r := StepResult{Step: step, Skipped: true}
	if reason != nil {
		r.Reason = reason.Error()
	}
	return r
}
