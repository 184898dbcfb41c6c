package executor

import (
	"errors"
	"fmt"
)

// Common error values for the executor
var (
	// ErrClosed is returned when submitting a task after Shutdown
	ErrClosed = errors.New("executor closed")

	// ErrCancelled is recorded on futures whose tasks were discarded
	// before a worker picked them up
	ErrCancelled = errors.New("task cancelled")

	// ErrResultTimeout is returned by Future.Result when the wait
	// expires before the task resolves
	ErrResultTimeout = errors.New("result wait timed out")
)

// TaskError wraps a failure produced by a task body, including recovered
// panics. The original failure is available via errors.Unwrap.
type TaskError struct {
	Label string
	Err   error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("task %q failed: %v", e.Label, e.Err)
	}
	return fmt.Sprintf("task failed: %v", e.Err)
}

// Unwrap returns the underlying failure for errors.Is/As compatibility
func (e *TaskError) Unwrap() error {
	return e.Err
}

// SerializationError reports a value that could not cross the isolation
// boundary in ModeIsolated. Stage identifies which side of the boundary
// failed ("input" or "result").
type SerializationError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *SerializationError) Error() string {
	return fmt.Sprintf("cannot serialize task %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying encode/decode error
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsCancelled checks if an error indicates a discarded task
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsTaskError checks if an error originated inside a task body
func IsTaskError(err error) bool {
	var taskErr *TaskError
	return errors.As(err, &taskErr)
}

// IsSerializationError checks if an error came from the isolation boundary
func IsSerializationError(err error) bool {
	var serErr *SerializationError
	return errors.As(err, &serErr)
}
