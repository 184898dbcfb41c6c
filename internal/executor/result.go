package executor

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Result is a snapshot of a resolved future
type Result struct {
	// Index is the position of the task in the submitted batch
	Index int

	// Label identifies the task, if one was supplied
	Label string

	// Value contains the successful result (nil if the task failed)
	Value any

	// Err contains the recorded failure (nil if the task succeeded)
	Err error

	// Duration is how long the task took to execute
	Duration time.Duration
}

// Collect waits for every future and returns their outcomes in
// submission order, regardless of completion order. If the context is
// cancelled first, Collect returns the snapshots gathered so far along
// with the context's error.
func Collect(ctx context.Context, futures []*Future) ([]Result, error) {
	results := make([]Result, 0, len(futures))

	for i, f := range futures {
		value, err := f.Wait(ctx)
		if err != nil && ctx.Err() != nil && !f.Done() {
			return results, ctx.Err()
		}
		results = append(results, Result{
			Index:    i,
			Label:    f.Label(),
			Value:    value,
			Err:      err,
			Duration: f.Duration(),
		})
	}

	return results, nil
}

// CountSuccessful returns the number of successful results
func CountSuccessful(results []Result) int {
	count := 0
	for _, r := range results {
		if r.Err == nil {
			count++
		}
	}
	return count
}

// CountFailed returns the number of failed results
func CountFailed(results []Result) int {
	return len(results) - CountSuccessful(results)
}

// FilterSuccessful returns only the successful results
func FilterSuccessful(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterFailed returns only the failed results
func FilterFailed(results []Result) []Result {
	filtered := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Errs extracts the errors from failed results
func Errs(results []Result) []error {
	errs := make([]error, 0)
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// HasErrors returns true if any result carries an error
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// AllSuccessful returns true if every result succeeded
func AllSuccessful(results []Result) bool {
	return !HasErrors(results)
}

// SuccessRate returns the success rate as a percentage (0.0 to 100.0)
func SuccessRate(results []Result) float64 {
	if len(results) == 0 {
		return 0.0
	}
	return float64(CountSuccessful(results)) / float64(len(results)) * 100.0
}

// AverageDuration calculates the average duration across all results
func AverageDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	var total time.Duration
	for _, r := range results {
		total += r.Duration
	}
	return total / time.Duration(len(results))
}

// MaxDuration returns the longest duration among all results
func MaxDuration(results []Result) time.Duration {
	var max time.Duration
	for _, r := range results {
		if r.Duration > max {
			max = r.Duration
		}
	}
	return max
}

// MinDuration returns the shortest duration among all results
func MinDuration(results []Result) time.Duration {
	if len(results) == 0 {
		return 0
	}

	min := results[0].Duration
	for _, r := range results {
		if r.Duration < min {
			min = r.Duration
		}
	}
	return min
}

// Summary provides an overview of a batch's outcomes
type Summary struct {
	Total       int
	Successful  int
	Failed      int
	AvgDuration time.Duration
	MaxDuration time.Duration
	MinDuration time.Duration
}

// Summarize creates a summary of the results
func Summarize(results []Result) Summary {
	return Summary{
		Total:       len(results),
		Successful:  CountSuccessful(results),
		Failed:      CountFailed(results),
		AvgDuration: AverageDuration(results),
		MaxDuration: MaxDuration(results),
		MinDuration: MinDuration(results),
	}
}

// String returns a human-readable representation of the summary
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total: %d, ", s.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d, ", s.Successful))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	if s.Total > 0 {
		sb.WriteString(fmt.Sprintf(", Avg: %s", s.AvgDuration.Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf(", Max: %s", s.MaxDuration.Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf(", Min: %s", s.MinDuration.Round(time.Millisecond)))
	}

	return sb.String()
}
