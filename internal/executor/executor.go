package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultWorkers is the pool capacity used when none is configured
const DefaultWorkers = 4

// Mode selects the execution strategy for task bodies
type Mode int

const (
	// ModeShared runs task bodies on workers that share the caller's
	// memory. Bodies may read and write shared state at the caller's
	// own risk; the executor offers no isolation there.
	ModeShared Mode = iota

	// ModeIsolated copies inputs and results through a gob serialization
	// boundary, so bodies only ever observe deep copies. Values that
	// cannot cross the boundary fail the task with a SerializationError.
	ModeIsolated
)

// String returns a human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// Option configures an Executor at construction time
type Option func(*Executor)

// WithWorkers sets the pool capacity.
// Values below 1 are clamped to 1.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		e.workers = n
	}
}

// WithMode selects the execution strategy
func WithMode(m Mode) Option {
	return func(e *Executor) {
		e.mode = m
	}
}

// WithLogger sets the logger for pool lifecycle events
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithContext sets the base context passed to task bodies.
// Cancelling it lets the caller interrupt running bodies that honor their
// context; the executor itself never preempts a running task.
func WithContext(ctx context.Context) Option {
	return func(e *Executor) {
		if ctx != nil {
			e.baseCtx = ctx
		}
	}
}

// WithMetrics attaches Prometheus instrumentation to the pool
func WithMetrics(m *Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// Executor accepts task submissions and dispatches them to a fixed pool
// of workers. Each call to New starts an independent, caller-owned
// instance; there is no shared package-level state.
type Executor struct {
	workers int
	mode    Mode
	logger  *slog.Logger
	metrics *Metrics
	baseCtx context.Context

	queue *taskQueue

	// wg tracks worker goroutines; they exit once the queue is
	// closed and drained
	wg sync.WaitGroup

	// closed flips once at shutdown and stays set
	closed atomic.Bool

	// active counts workers currently executing a body; never exceeds
	// the pool capacity
	active atomic.Int32
}

// New creates an executor and starts its worker pool immediately.
// The pool runs until Shutdown is called.
func New(opts ...Option) *Executor {
	e := &Executor{
		workers: DefaultWorkers,
		mode:    ModeShared,
		logger:  slog.Default(),
		baseCtx: context.Background(),
		queue:   newTaskQueue(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.workers < 1 {
		e.workers = 1
	}

	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}

	e.logger.Debug("executor started",
		"workers", e.workers,
		"mode", e.mode.String())

	return e
}

// Submit enqueues a task and returns its Future immediately.
// It never blocks. After Shutdown it fails with ErrClosed.
func (e *Executor) Submit(body Body, input any) (*Future, error) {
	return e.SubmitTask(Task{Body: body, Input: input})
}

// SubmitTask enqueues a task with an explicit label
func (e *Executor) SubmitTask(task Task) (*Future, error) {
	if task.Body == nil {
		return nil, errors.New("task must have a body")
	}

	if e.closed.Load() {
		return nil, ErrClosed
	}

	f := newFuture(task.Label)
	if !e.queue.push(queueItem{task: task, future: f}) {
		// Shutdown raced with the submission
		return nil, ErrClosed
	}

	e.metrics.taskSubmitted()
	e.metrics.queueDepth(e.queue.len())
	e.logger.Debug("task submitted", "label", task.Label, "queued", e.queue.len())

	return f, nil
}

// Map submits body once per input and returns the futures in input order.
// Completion order is not guaranteed; only the returned slice's
// correspondence to inputs is. A failing input does not affect its
// siblings.
func (e *Executor) Map(body Body, inputs []any) ([]*Future, error) {
	futures := make([]*Future, 0, len(inputs))
	for _, input := range inputs {
		f, err := e.Submit(body, input)
		if err != nil {
			return futures, err
		}
		futures = append(futures, f)
	}
	return futures, nil
}

// Shutdown stops accepting submissions.
// With wait set, it blocks until every queued and running task has
// resolved. Without it, Shutdown returns immediately: running tasks
// finish asynchronously, and tasks still queued are discarded with
// ErrCancelled recorded on their futures. Shutdown is idempotent.
func (e *Executor) Shutdown(wait bool) {
	first := e.closed.CompareAndSwap(false, true)

	discarded := 0
	if first {
		drained := e.queue.close(!wait)
		for _, it := range drained {
			if it.future.Cancel() {
				discarded++
				e.metrics.taskCancelled()
			}
		}
		e.metrics.queueDepth(e.queue.len())
		e.logger.Info("executor shutting down",
			"wait", wait,
			"discarded", discarded)
	}

	if wait {
		e.wg.Wait()
	}
}

// IsShutdown reports whether Shutdown has been called
func (e *Executor) IsShutdown() bool {
	return e.closed.Load()
}

// WorkerCount returns the pool capacity
func (e *Executor) WorkerCount() int {
	return e.workers
}

// ActiveCount returns the number of workers currently executing a task
func (e *Executor) ActiveCount() int {
	return int(e.active.Load())
}

// QueuedCount returns the number of tasks waiting for a worker
func (e *Executor) QueuedCount() int {
	return e.queue.len()
}

// worker repeatedly takes the next task from the queue and executes it.
// A failing task never crashes the worker; it records the failure on the
// future and moves on.
func (e *Executor) worker(id int) {
	defer e.wg.Done()

	e.logger.Debug("worker started", "worker_id", id)

	for {
		it, ok := e.queue.pop()
		if !ok {
			e.logger.Debug("worker finished", "worker_id", id)
			return
		}
		e.metrics.queueDepth(e.queue.len())

		if !it.future.start() {
			// Cancelled while queued
			e.metrics.taskCancelled()
			e.logger.Debug("skipping cancelled task",
				"worker_id", id,
				"label", it.task.Label)
			continue
		}

		e.active.Add(1)
		e.metrics.workerActive()
		e.execute(id, it)
		e.metrics.workerIdle()
		e.active.Add(-1)
	}
}

// execute runs one task body and resolves its future
func (e *Executor) execute(workerID int, it queueItem) {
	value, err := e.invoke(it.task)
	if err != nil {
		if !IsSerializationError(err) {
			err = &TaskError{Label: it.task.Label, Err: err}
		}
		it.future.fail(err)
		e.metrics.taskFailed()
		e.logger.Warn("task failed",
			"worker_id", workerID,
			"label", it.task.Label,
			"error", err,
			"duration", it.future.Duration())
		return
	}

	it.future.complete(value)
	e.metrics.taskCompleted(it.future.Duration())
	e.logger.Debug("task succeeded",
		"worker_id", workerID,
		"label", it.task.Label,
		"duration", it.future.Duration())
}

// invoke applies the task body to its input, crossing the serialization
// boundary in ModeIsolated and converting panics into errors
func (e *Executor) invoke(task Task) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{recovered: r}
		}
	}()

	input := task.Input
	if e.mode == ModeIsolated {
		input, err = crossBoundary(input)
		if err != nil {
			return nil, &SerializationError{Stage: "input", Err: err}
		}
	}

	value, err = task.Body(e.baseCtx, input)
	if err != nil {
		return nil, err
	}

	if e.mode == ModeIsolated {
		value, err = crossBoundary(value)
		if err != nil {
			return nil, &SerializationError{Stage: "result", Err: err}
		}
	}

	return value, nil
}
