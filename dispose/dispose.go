// Package dispose implements explicit resource management:
// DisposableStack and AsyncDisposableStack, each an append-only stack of
// cleanup actions run in LIFO order, with SuppressedError chaining when
// more than one teardown step fails.
//
// AsyncDisposableStack.DisposeAsync composes directly with package
// promise rather than with package pauser: one could frame the async-stack
// teardown loop as a suspended execution frame of its own, but
// the actual suspension points there belong to user-written async
// dispose methods, not to the stack's own sequencing — the stack just
// needs to run one step after another only once the previous step's
// promise has settled, which a promise chain already expresses directly.
// Pauser is reserved for suspending the caller's own generator/async
// frame; nothing about LIFO teardown sequencing needs a second goroutine.
package dispose

import (
	"fmt"

	"github.com/coregx/yarrgo/hosterror"
	"github.com/coregx/yarrgo/promise"
)

// Disposer is anything with a synchronous dispose method, the
// [Symbol.dispose] contract.
type Disposer interface {
	Dispose() error
}

// AsyncDisposer is the asynchronous counterpart, [Symbol.asyncDispose].
type AsyncDisposer interface {
	DisposeAsync() *promise.Promise
}

type disposerFunc func() error

func (f disposerFunc) Dispose() error { return f() }

// WrapAsync adapts an AsyncDisposer into a Disposer for use with a
// synchronous DisposableStack, the way the host wraps
// [Symbol.asyncDispose] into a sync invoker: it starts the async
// teardown and swallows the returned promise rather than waiting on it.
func WrapAsync(value AsyncDisposer) Disposer {
	return disposerFunc(func() error {
		value.DisposeAsync()
		return nil
	})
}

// SuppressedError chains a later dispose failure onto whatever had
// already been observed: LIFO teardown means the most recent failure is
// the one the caller sees first, with every earlier failure nested
// under Suppressed.
type SuppressedError struct {
	Err        error
	Suppressed error
}

func (e *SuppressedError) Error() string {
	return fmt.Sprintf("%v (suppressed: %v)", e.Err, e.Suppressed)
}

func (e *SuppressedError) Unwrap() error { return e.Err }

// chain folds a newly observed error onto whatever was already
// accumulated (nil if err is the first failure seen): the new error
// always becomes the outer .Err, with the prior accumulation nested
// under .Suppressed. For three failures observed in order e3, e2, e1
// this produces {Err: e1, Suppressed: {Err: e2, Suppressed: e3}},
// matching the "Suppressed-error chain" invariant.
func chain(acc error, err error) error {
	if acc == nil {
		return err
	}
	return &SuppressedError{Err: err, Suppressed: acc}
}

type record struct {
	dispose func() error
}

// DisposableStack holds an append-only stack of synchronous cleanup
// actions plus a disposed flag. It is not safe for concurrent use by
// multiple goroutines, matching its single-threaded host object.
type DisposableStack struct {
	records  []record
	disposed bool
}

// NewDisposableStack returns an empty stack.
func NewDisposableStack() *DisposableStack {
	return &DisposableStack{}
}

// Disposed reports whether Dispose has already run.
func (s *DisposableStack) Disposed() bool { return s.disposed }

// Use pushes value's Dispose method onto the stack and returns value
// unchanged, the way `using x = stack.use(value)` threads the resource
// back to the caller. A nil value is rejected with a TypeError.
func (s *DisposableStack) Use(value Disposer) (Disposer, error) {
	if s.disposed {
		return nil, &hosterror.ReferenceError{Message: "use called on a disposed DisposableStack"}
	}
	if value == nil {
		return nil, &hosterror.TypeError{Message: "use requires a non-nil Disposer"}
	}
	s.records = append(s.records, record{dispose: value.Dispose})
	return value, nil
}

// Adopt pushes a record whose dispose method invokes onDispose(value).
func (s *DisposableStack) Adopt(value any, onDispose func(any) error) error {
	if s.disposed {
		return &hosterror.ReferenceError{Message: "adopt called on a disposed DisposableStack"}
	}
	if onDispose == nil {
		return &hosterror.TypeError{Message: "adopt requires a non-nil onDispose"}
	}
	s.records = append(s.records, record{dispose: func() error { return onDispose(value) }})
	return nil
}

// Defer pushes a record whose dispose method invokes onDispose with no
// argument.
func (s *DisposableStack) Defer(onDispose func() error) error {
	if s.disposed {
		return &hosterror.ReferenceError{Message: "defer called on a disposed DisposableStack"}
	}
	if onDispose == nil {
		return &hosterror.TypeError{Message: "defer requires a non-nil onDispose"}
	}
	s.records = append(s.records, record{dispose: onDispose})
	return nil
}

// Dispose runs every pushed record in LIFO order. It marks the stack
// disposed before running any record, so a dispose method that re-enters
// Dispose observes the no-op path rather than double-running records.
// Errors from more than one record chain via SuppressedError.
func (s *DisposableStack) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true
	records := s.records
	s.records = nil

	var acc error
	for i := len(records) - 1; i >= 0; i-- {
		if err := records[i].dispose(); err != nil {
			acc = chain(acc, err)
		}
	}
	return acc
}

// Move transfers this stack's pending records to a fresh stack and
// marks the receiver disposed, so ownership of the pending cleanups can
// be handed to a caller whose lifetime outlives this stack's own scope.
func (s *DisposableStack) Move() *DisposableStack {
	moved := &DisposableStack{records: s.records}
	s.records = nil
	s.disposed = true
	return moved
}
