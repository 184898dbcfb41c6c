// Package executor provides a bounded-concurrency task executor: a fixed
// pool of workers pulling from one shared FIFO queue, with futures for
// tracking each task's eventual result.
//
// Each Executor is an independent, caller-owned instance created with
// constructor options; there is no package-level engine. Submissions
// never block, futures support both non-blocking polling and blocking
// waits with timeout, and shutdown is clean in either the draining or
// the discarding variant.
//
// # Basic Usage
//
// Create an executor, submit work, and wait on the futures:
//
//	exec := executor.New(executor.WithWorkers(5))
//	defer exec.Shutdown(true)
//
//	future, err := exec.Submit(func(ctx context.Context, input any) (any, error) {
//	    return process(input)
//	}, payload)
//	if err != nil {
//	    return err
//	}
//
//	value, err := future.Result(30 * time.Second)
//
// # Batches
//
// Map submits one task per input and returns futures in input order:
//
//	futures, err := exec.Map(body, inputs)
//	results, err := executor.Collect(ctx, futures)
//	summary := executor.Summarize(results)
//
// The i-th future always corresponds to the i-th input; completion order
// carries no guarantee.
//
// # Execution Modes
//
// ModeShared (the default) runs bodies on workers sharing the caller's
// memory. ModeIsolated round-trips inputs and results through gob
// encoding, so bodies only ever observe deep copies; values that cannot
// be serialized fail their own future with a SerializationError and
// leave sibling tasks untouched. Custom types crossing the boundary must
// be registered with gob.Register first.
//
// # Cancellation
//
// Future.Cancel succeeds only while the task is still queued. Once a
// worker has started the body, the executor never preempts it; callers
// who need to interrupt long-running bodies should pass a cancellable
// base context via WithContext and honor it inside the body.
//
// # Error Handling
//
// Task failures never escape the worker loop. Body errors and recovered
// panics are wrapped in a TaskError and recorded on the owning future;
// one failing task in a batch does not affect its siblings. Executor
// errors (ErrClosed, ErrResultTimeout) are returned synchronously at the
// offending call.
//
// # Concurrency Guarantees
//
// The pool guarantees:
//   - At most WorkerCount tasks run simultaneously
//   - Submission order defines dispatch order (FIFO, no priority)
//   - Every future transitions past Pending at most once, then is immutable
//   - Shutdown(true) leaves no goroutines behind
package executor
