package types

import (
	"github.com/juju/errors"
)

var (
	_ error = &StructuralError{}
	_ error = &ExecutorError{}
)

// NewStructuralErrorf reports a precondition failure detected before any node
// executes: empty graph, duplicate ids, unknown kind, missing trigger.
func NewStructuralErrorf(format string, args ...interface{}) error {
	return &StructuralError{baseError: newBaseErr(errors.Errorf(format, args...))}
}

// NewExecutorError wraps a node-level failure. The executor logs an error
// entry before returning it; the walker aborts the run and surfaces the
// message in the execution result.
func NewExecutorError(nodeID string, otherErr error) error {
	return &ExecutorError{baseError: newBaseErr(otherErr), NodeID: nodeID}
}

func NewExecutorErrorf(nodeID string, format string, args ...interface{}) error {
	return NewExecutorError(nodeID, errors.Errorf(format, args...))
}

func newBaseErr(otherErr error) *baseError {
	return &baseError{unwrapErr(otherErr)}
}

func unwrapErr(err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := err.(wrappedErr); ok {
		return unwrapErr(ue.UnwrapLocal())
	}
	return err
}

type wrappedErr interface {
	UnwrapLocal() error
}

type baseError struct {
	BaseErr error
}

func (e *baseError) Error() string {
	return e.BaseErr.Error()
}

func (e *baseError) UnwrapLocal() error {
	return e.BaseErr
}

type StructuralError struct {
	*baseError
}

type ExecutorError struct {
	*baseError

	NodeID string
}

// IsStructural reports whether err originated from graph validation rather
// than a node executor.
func IsStructural(err error) bool {
	_, ok := unwrapAs[*StructuralError](err)
	return ok
}

// IsExecutor reports whether err originated from a node executor, returning
// the offending node id when it did.
func IsExecutor(err error) (string, bool) {
	e, ok := unwrapAs[*ExecutorError](err)
	if !ok {
		return "", false
	}
	return e.NodeID, true
}

func unwrapAs[T error](err error) (T, bool) {
	var zero T
	for err != nil {
		if e, ok := err.(T); ok {
			return e, true
		}
		err = errors.Unwrap(err)
	}
	return zero, false
}
