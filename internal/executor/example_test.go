package executor_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ilham-ap/parex/internal/executor"
)

// Example demonstrates submitting a batch and collecting its results
func Example() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	exec := executor.New(
		executor.WithWorkers(3),
		executor.WithLogger(logger),
	)
	defer exec.Shutdown(true)

	square := func(ctx context.Context, input any) (any, error) {
		return input.(int) * input.(int), nil
	}

	futures, err := exec.Map(square, []any{1, 2, 3, 4})
	if err != nil {
		fmt.Println("submit failed:", err)
		return
	}

	// Collect returns outcomes in submission order even though the
	// tasks complete in any order
	results, err := executor.Collect(context.Background(), futures)
	if err != nil {
		fmt.Println("collect failed:", err)
		return
	}

	for _, r := range results {
		fmt.Println(r.Value)
	}

	// Output:
	// 1
	// 4
	// 9
	// 16
}

// ExampleFuture_Result demonstrates polling and blocking retrieval
func ExampleFuture_Result() {
	exec := executor.New(executor.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer exec.Shutdown(true)

	future, err := exec.Submit(func(ctx context.Context, input any) (any, error) {
		time.Sleep(10 * time.Millisecond)
		return fmt.Sprintf("processed %v", input), nil
	}, "payload")
	if err != nil {
		fmt.Println("submit failed:", err)
		return
	}

	// Block with a generous timeout
	value, err := future.Result(time.Second)
	if err != nil {
		fmt.Println("task failed:", err)
		return
	}

	fmt.Println(value)
	fmt.Println("done:", future.Done())

	// Output:
	// processed payload
	// done: true
}
