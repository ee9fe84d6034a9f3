package dispose

import (
	"github.com/coregx/yarrgo/hosterror"
	"github.com/coregx/yarrgo/promise"
)

type asyncRecord struct {
	disposeAsync func() *promise.Promise
}

// AsyncDisposableStack is DisposableStack's asynchronous counterpart:
// every record's teardown returns a promise, and DisposeAsync awaits
// each one, in LIFO order, before starting the next.
type AsyncDisposableStack struct {
	sched    *promise.Scheduler
	records  []asyncRecord
	disposed bool
}

// NewAsyncDisposableStack returns an empty stack whose DisposeAsync
// promise settles on sched.
func NewAsyncDisposableStack(sched *promise.Scheduler) *AsyncDisposableStack {
	return &AsyncDisposableStack{sched: sched}
}

// Disposed reports whether DisposeAsync has already started.
func (s *AsyncDisposableStack) Disposed() bool { return s.disposed }

// Use pushes value's DisposeAsync method and returns value unchanged.
func (s *AsyncDisposableStack) Use(value AsyncDisposer) (AsyncDisposer, error) {
	if s.disposed {
		return nil, &hosterror.ReferenceError{Message: "use called on a disposed AsyncDisposableStack"}
	}
	if value == nil {
		return nil, &hosterror.TypeError{Message: "use requires a non-nil AsyncDisposer"}
	}
	s.records = append(s.records, asyncRecord{disposeAsync: value.DisposeAsync})
	return value, nil
}

// Adopt pushes a record whose async dispose method invokes
// onDispose(value).
func (s *AsyncDisposableStack) Adopt(value any, onDispose func(any) *promise.Promise) error {
	if s.disposed {
		return &hosterror.ReferenceError{Message: "adopt called on a disposed AsyncDisposableStack"}
	}
	if onDispose == nil {
		return &hosterror.TypeError{Message: "adopt requires a non-nil onDispose"}
	}
	s.records = append(s.records, asyncRecord{disposeAsync: func() *promise.Promise { return onDispose(value) }})
	return nil
}

// Defer pushes a record whose async dispose method invokes onDispose
// with no argument.
func (s *AsyncDisposableStack) Defer(onDispose func() *promise.Promise) error {
	if s.disposed {
		return &hosterror.ReferenceError{Message: "defer called on a disposed AsyncDisposableStack"}
	}
	if onDispose == nil {
		return &hosterror.TypeError{Message: "defer requires a non-nil onDispose"}
	}
	s.records = append(s.records, asyncRecord{disposeAsync: onDispose})
	return nil
}

// DisposeAsync runs every pushed record in LIFO order, awaiting each
// record's promise before starting the next. The returned promise
// settles once every record has run; SuppressedError accumulates across
// the chain exactly as the synchronous Dispose does, using each
// rejection reason (converted to an error via ThrownValue if it is not
// already one).
func (s *AsyncDisposableStack) DisposeAsync() *promise.Promise {
	if s.disposed {
		return promise.Resolved(s.sched, nil)
	}
	s.disposed = true
	records := s.records
	s.records = nil

	var resolve, reject func(any)
	result := promise.New(s.sched, func(res func(any), rej func(any)) {
		resolve = res
		reject = rej
	})

	var step func(i int, acc error)
	step = func(i int, acc error) {
		if i < 0 {
			if acc != nil {
				reject(acc)
			} else {
				resolve(nil)
			}
			return
		}
		records[i].disposeAsync().Then(
			func(any) (any, error) {
				step(i-1, acc)
				return nil, nil
			},
			func(reason any) (any, error) {
				step(i-1, chain(acc, asError(reason)))
				return nil, nil
			},
		)
	}
	step(len(records)-1, nil)

	return result
}

// ThrownValue wraps an arbitrary rejection reason that is not itself a
// Go error, since ECMAScript permits rejecting with any value.
type ThrownValue struct {
	Value any
}

func (e *ThrownValue) Error() string { return "thrown value" }

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &ThrownValue{Value: v}
}
