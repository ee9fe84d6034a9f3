package promise

import (
	"fmt"
	"sync"
)

// All implements Promise.all: resolves with the fulfillment values in
// input order once every input has fulfilled; rejects eagerly with the
// first rejection observed, regardless of input order.
func All(sched *Scheduler, promises []*Promise) *Promise {
	result := &Promise{sched: sched, state: Pending}
	if len(promises) == 0 {
		result.resolve([]any{})
		return result
	}

	values := make([]any, len(promises))
	var mu sync.Mutex
	remaining := len(promises)

	for i, p := range promises {
		i := i
		p.subscribe(
			func(v any) {
				mu.Lock()
				values[i] = v
				remaining--
				done := remaining == 0
				mu.Unlock()
				if done {
					result.resolve(append([]any(nil), values...))
				}
			},
			func(r any) { result.reject(r) },
		)
	}
	return result
}

// Race settles with whichever input settles first; later settlements
// from the other inputs are ignored (a promise settles at most once).
func Race(sched *Scheduler, promises []*Promise) *Promise {
	result := &Promise{sched: sched, state: Pending}
	for _, p := range promises {
		p.subscribe(result.resolve, result.reject)
	}
	return result
}

// SettledResult is one element of the array Promise.allSettled resolves
// with: Status is "fulfilled" or "rejected", and exactly one of
// Value/Reason is meaningful for that status.
type SettledResult struct {
	Status string
	Value  any
	Reason any
}

// AllSettled never rejects on account of an element rejecting; it waits
// for every input to settle one way or the other.
func AllSettled(sched *Scheduler, promises []*Promise) *Promise {
	result := &Promise{sched: sched, state: Pending}
	if len(promises) == 0 {
		result.resolve([]SettledResult{})
		return result
	}

	results := make([]SettledResult, len(promises))
	var mu sync.Mutex
	remaining := len(promises)
	settleOne := func() {
		mu.Lock()
		remaining--
		done := remaining == 0
		mu.Unlock()
		if done {
			result.resolve(append([]SettledResult(nil), results...))
		}
	}

	for i, p := range promises {
		i := i
		p.subscribe(
			func(v any) {
				mu.Lock()
				results[i] = SettledResult{Status: "fulfilled", Value: v}
				mu.Unlock()
				settleOne()
			},
			func(r any) {
				mu.Lock()
				results[i] = SettledResult{Status: "rejected", Reason: r}
				mu.Unlock()
				settleOne()
			},
		)
	}
	return result
}

// AggregateError is the rejection reason Promise.any produces when every
// input has rejected: Errors holds each rejection reason in input order.
type AggregateError struct {
	Errors []any
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("AggregateError: all %d promises were rejected", len(e.Errors))
}

// Any resolves with the first fulfillment observed; if every input
// rejects, it rejects with an AggregateError collecting every reason in
// input order.
func Any(sched *Scheduler, promises []*Promise) *Promise {
	result := &Promise{sched: sched, state: Pending}
	if len(promises) == 0 {
		result.reject(&AggregateError{})
		return result
	}

	reasons := make([]any, len(promises))
	var mu sync.Mutex
	remaining := len(promises)

	for i, p := range promises {
		i := i
		p.subscribe(
			func(v any) { result.resolve(v) },
			func(r any) {
				mu.Lock()
				reasons[i] = r
				remaining--
				done := remaining == 0
				mu.Unlock()
				if done {
					result.reject(&AggregateError{Errors: append([]any(nil), reasons...)})
				}
			},
		)
	}
	return result
}
