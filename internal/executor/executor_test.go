package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(t *testing.T, opts ...Option) *Executor {
	t.Helper()
	e := New(append([]Option{WithLogger(testLogger())}, opts...)...)
	t.Cleanup(func() { e.Shutdown(true) })
	return e
}

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		workers         int
		expectedWorkers int
	}{
		{
			name:            "positive workers",
			workers:         5,
			expectedWorkers: 5,
		},
		{
			name:            "zero workers defaults to 1",
			workers:         0,
			expectedWorkers: 1,
		},
		{
			name:            "negative workers defaults to 1",
			workers:         -5,
			expectedWorkers: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExecutor(t, WithWorkers(tt.workers))

			if e.WorkerCount() != tt.expectedWorkers {
				t.Errorf("expected %d workers, got %d", tt.expectedWorkers, e.WorkerCount())
			}

			if e.IsShutdown() {
				t.Error("new executor should not be shut down")
			}

			if e.QueuedCount() != 0 {
				t.Errorf("expected 0 queued tasks, got %d", e.QueuedCount())
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	e := newTestExecutor(t)

	if e.WorkerCount() != DefaultWorkers {
		t.Errorf("expected %d workers by default, got %d", DefaultWorkers, e.WorkerCount())
	}

	if e.mode != ModeShared {
		t.Errorf("expected ModeShared by default, got %v", e.mode)
	}
}

func TestSubmitReturnsPendingFuture(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(1))

	// Occupy the only worker so the probe task stays queued
	gate := make(chan struct{})
	blocker, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		<-gate
		return nil, nil
	}, nil)
	if err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	f, err := e.Submit(func(ctx context.Context, input any) (any, error) {
		return input, nil
	}, "probe")
	if err != nil {
		t.Fatalf("unexpected submit error: %v", err)
	}

	if f.State() != StatePending {
		t.Errorf("queued future should be Pending, got %v", f.State())
	}

	close(gate)

	if _, err := blocker.Result(time.Second); err != nil {
		t.Fatalf("blocker task failed: %v", err)
	}
	value, err := f.Result(time.Second)
	if err != nil {
		t.Fatalf("probe task failed: %v", err)
	}
	if value != "probe" {
		t.Errorf("expected %q, got %v", "probe", value)
	}
}

func TestSubmitValidation(t *testing.T) {
	e := newTestExecutor(t)

	if _, err := e.Submit(nil, "input"); err == nil {
		t.Error("submitting a nil body should fail")
	}
}

func TestSubmitAfterShutdown(t *testing.T) {
	e := New(WithLogger(testLogger()), WithWorkers(2))
	e.Shutdown(true)

	_, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		return nil, nil
	}, nil)

	if !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	if !e.IsShutdown() {
		t.Error("IsShutdown should report true after Shutdown")
	}
}

func TestAllSubmittedTasksResolve(t *testing.T) {
	e := New(WithLogger(testLogger()), WithWorkers(5))

	const n = 50
	futures := make([]*Future, 0, n)
	for i := 0; i < n; i++ {
		f, err := e.Submit(func(ctx context.Context, input any) (any, error) {
			return input.(int) + 1, nil
		}, i)
		if err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		futures = append(futures, f)
	}

	if len(futures) != n {
		t.Fatalf("expected %d futures, got %d", n, len(futures))
	}

	e.Shutdown(true)

	for i, f := range futures {
		if !f.Done() {
			t.Fatalf("future %d not resolved after Shutdown(true)", i)
		}
		value, err := f.Result(0)
		if err != nil {
			t.Errorf("future %d failed: %v", i, err)
			continue
		}
		if value != i+1 {
			t.Errorf("future %d: expected %d, got %v", i, i+1, value)
		}
	}
}

func TestMapPreservesInputOrder(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(8))

	inputs := make([]any, 20)
	for i := range inputs {
		inputs[i] = i
	}

	// Stagger durations so completion order differs from submission order
	body := func(ctx context.Context, input any) (any, error) {
		n := input.(int)
		time.Sleep(time.Duration(20-n) * time.Millisecond)
		return n * 2, nil
	}

	futures, err := e.Map(body, inputs)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if len(futures) != len(inputs) {
		t.Fatalf("expected %d futures, got %d", len(inputs), len(futures))
	}

	results, err := Collect(context.Background(), futures)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	for i, r := range results {
		if r.Err != nil {
			t.Errorf("input %d failed: %v", i, r.Err)
			continue
		}
		if r.Value != i*2 {
			t.Errorf("results[%d] = %v, want %d", i, r.Value, i*2)
		}
	}
}

func TestMapAfterShutdown(t *testing.T) {
	e := New(WithLogger(testLogger()))
	e.Shutdown(true)

	body := func(ctx context.Context, input any) (any, error) { return input, nil }
	if _, err := e.Map(body, []any{1, 2, 3}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestConcurrencyBound(t *testing.T) {
	const capacity = 3
	e := newTestExecutor(t, WithWorkers(capacity))

	var current, peak atomic.Int32

	body := func(ctx context.Context, _ any) (any, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		current.Add(-1)
		return nil, nil
	}

	futures, err := e.Map(body, make([]any, 30))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	if _, err := Collect(context.Background(), futures); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := peak.Load(); got > capacity {
		t.Errorf("observed %d concurrent tasks, capacity is %d", got, capacity)
	}
}

func TestParallelSpeedup(t *testing.T) {
	// 10 tasks sleeping one unit on a pool of 5 should take about
	// two units, not ten
	const unit = 100 * time.Millisecond
	e := newTestExecutor(t, WithWorkers(5))

	body := func(ctx context.Context, _ any) (any, error) {
		time.Sleep(unit)
		return nil, nil
	}

	start := time.Now()
	futures, err := e.Map(body, make([]any, 10))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if _, err := Collect(context.Background(), futures); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 2*unit {
		t.Errorf("elapsed %v is below the two-batch floor %v", elapsed, 2*unit)
	}
	if elapsed > 6*unit {
		t.Errorf("elapsed %v suggests tasks ran serially", elapsed)
	}
}

func TestFailingTaskDoesNotAffectSiblings(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(4))

	failure := errors.New("division by zero")
	body := func(ctx context.Context, input any) (any, error) {
		if input.(int) == 3 {
			return nil, failure
		}
		return input, nil
	}

	futures, err := e.Map(body, []any{0, 1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	results, err := Collect(context.Background(), futures)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if got := CountFailed(results); got != 1 {
		t.Fatalf("expected exactly 1 failure, got %d", got)
	}

	bad := results[3]
	if bad.Err == nil {
		t.Fatal("expected input 3 to fail")
	}
	if !IsTaskError(bad.Err) {
		t.Errorf("expected a TaskError, got %T", bad.Err)
	}
	if !errors.Is(bad.Err, failure) {
		t.Errorf("expected wrapped cause %v, got %v", failure, bad.Err)
	}
	if bad.Err.Error() == "" {
		t.Error("failure must carry a non-empty description")
	}

	for _, r := range FilterSuccessful(results) {
		if futures[r.Index].State() != StateCompleted {
			t.Errorf("sibling %d should be Completed, got %v", r.Index, futures[r.Index].State())
		}
	}
}

func TestPanicRecovery(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(1))

	f, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		panic("unexpected condition")
	}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if _, err := f.Result(time.Second); err == nil {
		t.Fatal("panicking task should fail its future")
	} else if !IsTaskError(err) {
		t.Errorf("expected a TaskError, got %T: %v", err, err)
	}

	// The worker survives and keeps executing
	next, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		return "alive", nil
	}, nil)
	if err != nil {
		t.Fatalf("submit after panic failed: %v", err)
	}

	value, err := next.Result(time.Second)
	if err != nil {
		t.Fatalf("task after panic failed: %v", err)
	}
	if value != "alive" {
		t.Errorf("expected %q, got %v", "alive", value)
	}
}

func TestShutdownWaitDrainsQueue(t *testing.T) {
	e := New(WithLogger(testLogger()), WithWorkers(1))

	var executed atomic.Int32
	body := func(ctx context.Context, _ any) (any, error) {
		time.Sleep(5 * time.Millisecond)
		executed.Add(1)
		return nil, nil
	}

	futures, err := e.Map(body, make([]any, 10))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	e.Shutdown(true)

	if got := executed.Load(); got != 10 {
		t.Errorf("expected all 10 tasks executed, got %d", got)
	}
	for i, f := range futures {
		if f.State() != StateCompleted {
			t.Errorf("future %d: expected Completed, got %v", i, f.State())
		}
	}
}

func TestShutdownNoWaitDiscardsQueued(t *testing.T) {
	e := New(WithLogger(testLogger()), WithWorkers(1))

	gate := make(chan struct{})
	running, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		<-gate
		return "finished", nil
	}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Wait for the worker to pick the blocker up
	waitForState(t, running, StateRunning)

	queued := make([]*Future, 0, 5)
	for i := 0; i < 5; i++ {
		f, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
			return nil, nil
		}, nil)
		if err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
		queued = append(queued, f)
	}

	e.Shutdown(false)

	// Undispatched tasks are discarded immediately
	for i, f := range queued {
		if _, err := f.Result(0); !errors.Is(err, ErrCancelled) {
			t.Errorf("queued future %d: expected ErrCancelled, got %v", i, err)
		}
	}

	// The running task is left to finish asynchronously
	close(gate)
	value, err := running.Result(time.Second)
	if err != nil {
		t.Fatalf("running task failed: %v", err)
	}
	if value != "finished" {
		t.Errorf("expected %q, got %v", "finished", value)
	}

	e.Shutdown(true)
}

func TestShutdownIdempotent(t *testing.T) {
	e := New(WithLogger(testLogger()), WithWorkers(2))

	e.Shutdown(true)
	e.Shutdown(true)
	e.Shutdown(false)

	if !e.IsShutdown() {
		t.Error("executor should remain shut down")
	}
}

func TestCancelQueuedTask(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(1))

	gate := make(chan struct{})
	defer close(gate)

	running, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		<-gate
		return nil, nil
	}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	waitForState(t, running, StateRunning)

	queued, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		t.Error("cancelled task body must not run")
		return nil, nil
	}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if !queued.Cancel() {
		t.Fatal("Cancel on queued task should succeed")
	}

	if running.Cancel() {
		t.Error("Cancel on running task should fail")
	}

	if _, err := queued.Result(0); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestActiveCountBounded(t *testing.T) {
	const capacity = 2
	e := newTestExecutor(t, WithWorkers(capacity))

	body := func(ctx context.Context, _ any) (any, error) {
		time.Sleep(20 * time.Millisecond)
		return nil, nil
	}

	futures, err := e.Map(body, make([]any, 10))
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for !futures[len(futures)-1].Done() {
		if got := e.ActiveCount(); got > capacity {
			t.Fatalf("ActiveCount %d exceeds capacity %d", got, capacity)
		}
		select {
		case <-deadline:
			t.Fatal("tasks did not finish in time")
		default:
		}
		time.Sleep(time.Millisecond)
	}
}

func TestWithContextFlowsToBody(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	e := newTestExecutor(t, WithWorkers(1), WithContext(ctx))

	f, err := e.Submit(func(ctx context.Context, _ any) (any, error) {
		return ctx.Value(ctxKey{}), nil
	}, nil)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	value, err := f.Result(time.Second)
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if value != "marker" {
		t.Errorf("expected base context to reach the body, got %v", value)
	}
}

func TestSubmitTaskLabel(t *testing.T) {
	e := newTestExecutor(t, WithWorkers(1))

	f, err := e.SubmitTask(Task{
		Label: "checksum",
		Input: "payload",
		Body: func(ctx context.Context, input any) (any, error) {
			return fmt.Sprintf("ok:%v", input), nil
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if f.Label() != "checksum" {
		t.Errorf("expected label %q, got %q", "checksum", f.Label())
	}

	value, err := f.Result(time.Second)
	if err != nil {
		t.Fatalf("task failed: %v", err)
	}
	if value != "ok:payload" {
		t.Errorf("unexpected value %v", value)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeShared, "shared"},
		{ModeIsolated, "isolated"},
		{Mode(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.expected {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.expected)
		}
	}
}

// waitForState polls until the future reaches the wanted state
func waitForState(t *testing.T, f *Future, want State) {
	t.Helper()
	deadline := time.After(time.Second)
	for f.State() != want {
		select {
		case <-deadline:
			t.Fatalf("future never reached %v (currently %v)", want, f.State())
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
