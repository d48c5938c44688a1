package provisioning

import (
	"errors"
	"fmt"
	"strings"
)

// OperationError is the failure of a single platform operation.
type OperationError struct {
	Op       string
	Resource string
	Err      error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// OperationErrors collects the per-operation failures of a run.
type OperationErrors struct {
	Errors []*OperationError
}

func (e *OperationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d operations failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *OperationErrors) Unwrap() error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errors.Join(errs...)
}

// Add appends err if it is not nil.
func (e *OperationErrors) Add(err *OperationError) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any failure was collected.
func (e *OperationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Of returns the failures of operation op.
func (e *OperationErrors) Of(op string) []*OperationError {
	if e == nil {
		return nil
	}
	var out []*OperationError
	for _, err := range e.Errors {
		if err.Op == op {
			out = append(out, err)
		}
	}
	return out
}
