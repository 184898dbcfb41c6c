package executor

import (
	"context"
	"sync"
	"time"
)

// State represents the lifecycle state of a Future
type State int32

const (
	// StatePending indicates the task is queued and has not started
	StatePending State = iota
	// StateRunning indicates a worker is executing the task
	StateRunning
	// StateCompleted indicates the task finished and produced a value
	StateCompleted
	// StateFailed indicates the task failed or was cancelled
	StateFailed
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Future is the handle for the eventual result of a submitted task.
// It transitions Pending -> Running -> Completed or Failed exactly once
// and is immutable after resolving. All methods are safe for concurrent
// use by any number of callers.
type Future struct {
	label string

	mu       sync.Mutex
	state    State
	value    any
	err      error
	started  time.Time
	duration time.Duration

	// done is closed exactly once when the future resolves
	done chan struct{}
}

func newFuture(label string) *Future {
	return &Future{
		label: label,
		state: StatePending,
		done:  make(chan struct{}),
	}
}

// Label returns the label the task was submitted with
func (f *Future) Label() string {
	return f.label
}

// State returns the current state without blocking
func (f *Future) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done reports whether the future has resolved (Completed or Failed)
// without blocking
func (f *Future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Duration returns how long the task took to execute.
// It is zero until the future resolves, and stays zero for tasks that
// were cancelled before starting.
func (f *Future) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

// Result blocks until the future resolves or the timeout elapses.
// A timeout of zero polls without blocking. If the timeout expires first,
// Result returns ErrResultTimeout and the future is unchanged; it may be
// polled again later. Once resolved, Result returns the task's value, or
// the recorded error if the task failed.
func (f *Future) Result(timeout time.Duration) (any, error) {
	if timeout <= 0 {
		select {
		case <-f.done:
			return f.outcome()
		default:
			return nil, ErrResultTimeout
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.outcome()
	case <-timer.C:
		return nil, ErrResultTimeout
	}
}

// Wait blocks until the future resolves or the context is cancelled.
// On cancellation it returns the context's error; the task itself keeps
// running and the future may still be waited on again.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.outcome()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the recorded error if the future has resolved Failed,
// and nil otherwise. It never blocks.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Cancel discards the task if it has not started running.
// It returns true only while the future is still Pending; the future then
// resolves Failed with ErrCancelled. Once a worker has picked the task up,
// Cancel returns false and the task runs to completion.
func (f *Future) Cancel() bool {
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return false
	}
	f.state = StateFailed
	f.err = ErrCancelled
	f.mu.Unlock()

	close(f.done)
	return true
}

// start attempts the Pending -> Running transition.
// It returns false if the future was cancelled while queued.
func (f *Future) start() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePending {
		return false
	}
	f.state = StateRunning
	f.started = time.Now()
	return true
}

// complete resolves the future with a value
func (f *Future) complete(value any) {
	f.resolve(StateCompleted, value, nil)
}

// fail resolves the future with an error
func (f *Future) fail(err error) {
	f.resolve(StateFailed, nil, err)
}

func (f *Future) resolve(state State, value any, err error) {
	f.mu.Lock()
	if f.state == StateCompleted || f.state == StateFailed {
		// Already resolved, the first transition wins
		f.mu.Unlock()
		return
	}
	if !f.started.IsZero() {
		f.duration = time.Since(f.started)
	}
	f.state = state
	f.value = value
	f.err = err
	f.mu.Unlock()

	close(f.done)
}

// outcome reads the resolved value and error. Callers must only invoke it
// after the done channel is closed.
func (f *Future) outcome() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.value, nil
}
