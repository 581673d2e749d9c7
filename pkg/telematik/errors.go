package telematik

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoWorkingSheet indicates the workbook has no sheet to process.
var ErrNoWorkingSheet = errors.New("workbook has no working sheet")

// StepError represents a failure of one processing step.
type StepError struct {
	SheetName string
	Step      string // "read", "write", "serialize"
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("processing error in sheet %q (%s): %v", e.SheetName, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError.
func NewStepError(sheetName, step string, err error) *StepError {
	return &StepError{
		SheetName: sheetName,
		Step:      step,
		Err:       err,
	}
}
