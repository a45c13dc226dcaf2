package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError
var ErrInvalidInput = errors.New("invalid input")

// ErrNotApplicable is matched by every NotApplicableError
var ErrNotApplicable = errors.New("regime not applicable")

// InvalidScheduleError is a configuration defect found while building a bracket
// table. It is raised at load time only.
type InvalidScheduleError struct {
	Schedule string
	Reason   string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid bracket schedule %q: %s", e.Schedule, e.Reason)
}

// InvalidInputError reports an input a calculation entry point cannot use, most
// often a non-positive or non-finite amount. Callers typing into a form hit this
// constantly, so adapters render it as "not applicable" instead of failing.
type InvalidInputError struct {
	Operation string
	Field     string
	Value     string
	Reason    string // empty means the field must be a positive amount
}

func (e *InvalidInputError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be a positive amount"
	}
	return fmt.Sprintf("%s: %s %s, got %s", e.Operation, e.Field, reason, e.Value)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotApplicableError signals that a solved result violates a regime's legal floor
// or ceiling. It describes the result; the calculation itself succeeded.
type NotApplicableError struct {
	Regime RegimeKind
	Reason string
}

func (e *NotApplicableError) Error() string {
	return fmt.Sprintf("%s not applicable: %s", e.Regime, e.Reason)
}

func (e *NotApplicableError) Is(target error) bool {
	return target == ErrNotApplicable
}
