package executor

import "context"

// Body is the function a task applies to its input.
// Bodies must be safe to invoke concurrently in ModeShared, and their
// inputs and results must be gob-encodable in ModeIsolated.
type Body func(ctx context.Context, input any) (any, error)

// Task represents a unit of work to be executed by the worker pool.
// A task is immutable once submitted.
type Task struct {
	// Label optionally identifies the task in results and log output
	Label string

	// Input is the opaque value passed to Body
	Input any

	// Body is the function to run for this task
	Body Body
}
