// Package promise implements the Promise core: the settle-once
// state machine, FIFO reaction queues, and the combinators (all, race,
// allSettled, any). Settlement values are carried as `any`, mirroring
// how a promise can fulfill or reject with any ECMAScript value; Go
// callers type-assert on the way out the same way host code narrows a
// dynamically-typed value.
//
// A Promise always belongs to a Scheduler (the stand-in microtask
// queue): reactions never run synchronously inside Then, resolve, or
// reject, even when the promise is already settled — they are always
// handed to the Scheduler, which the caller drains explicitly.
//
// Example:
//
//	sched := promise.NewScheduler()
//	p := promise.Resolved(sched, 1)
//	var log []string
//	p.Then(func(v any) (any, error) {
//	    log = append(log, fmt.Sprintf("A:%v", v))
//	    return nil, nil
//	}, nil)
//	p.Then(func(v any) (any, error) {
//	    log = append(log, fmt.Sprintf("B:%v", v))
//	    return nil, nil
//	}, nil)
//	sched.Drain()
//	// log == []string{"A:1", "B:1"}
package promise

import "sync"

// State is a promise's position in Pending -> {Fulfilled, Rejected},
// a one-way, idempotent transition.
type State int

const (
	Pending State = iota
	Fulfilled
	Rejected
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

type reactionPair struct {
	onFulfilled func(any)
	onRejected  func(any)
}

// Promise is a settle-once value container with FIFO fulfill/reject
// reaction queues (%PromiseObject%). The zero value is not usable;
// construct one with New, Resolved, or Rejected.
type Promise struct {
	sched *Scheduler

	mu        sync.Mutex
	state     State
	value     any
	reactions []reactionPair
}

// New creates a pending promise and synchronously invokes executor with
// its resolve/reject functions, the way `new Promise(executor)` does. A
// panic inside executor rejects the promise with the recovered value,
// mirroring a thrown executor.
func New(sched *Scheduler, executor func(resolve func(any), reject func(any))) *Promise {
	p := &Promise{sched: sched, state: Pending}
	func() {
		defer func() {
			if r := recover(); r != nil {
				p.reject(r)
			}
		}()
		executor(p.resolve, p.reject)
	}()
	return p
}

// Resolved returns a promise fulfilled with value, unless value is itself
// a *Promise, in which case the result adopts that promise's eventual
// state on a microtask rather than fulfilling with the promise itself.
func Resolved(sched *Scheduler, value any) *Promise {
	p := &Promise{sched: sched, state: Pending}
	p.resolve(value)
	return p
}

// Rejected returns a promise already rejected with reason.
func Rejected(sched *Scheduler, reason any) *Promise {
	p := &Promise{sched: sched, state: Pending}
	p.reject(reason)
	return p
}

func (p *Promise) resolve(value any) {
	if inner, ok := value.(*Promise); ok {
		p.mu.Lock()
		if p.state != Pending {
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
		// Adopting a thenable's state always happens on a microtask, even
		// when inner is already settled.
		p.sched.enqueue(func() {
			inner.subscribe(p.resolve, p.reject)
		})
		return
	}
	p.settle(Fulfilled, value)
}

func (p *Promise) reject(reason any) {
	p.settle(Rejected, reason)
}

func (p *Promise) settle(state State, value any) {
	p.mu.Lock()
	if p.state != Pending {
		p.mu.Unlock()
		return
	}
	p.state = state
	p.value = value
	reactions := p.reactions
	p.reactions = nil
	p.mu.Unlock()

	for _, r := range reactions {
		r := r
		p.sched.enqueue(func() {
			if state == Fulfilled {
				r.onFulfilled(value)
			} else {
				r.onRejected(value)
			}
		})
	}
}

// subscribe registers onFulfilled/onRejected to run, via the scheduler,
// once p settles — immediately queuing them if p has already settled.
// Reactions registered against the same promise always run in
// registration order (the "Promise total ordering" invariant).
func (p *Promise) subscribe(onFulfilled, onRejected func(any)) {
	p.mu.Lock()
	switch p.state {
	case Pending:
		p.reactions = append(p.reactions, reactionPair{onFulfilled, onRejected})
		p.mu.Unlock()
	case Fulfilled:
		v := p.value
		p.mu.Unlock()
		p.sched.enqueue(func() { onFulfilled(v) })
	case Rejected:
		r := p.value
		p.mu.Unlock()
		p.sched.enqueue(func() { onRejected(r) })
	}
}

// Outcome returns the promise's current state and, once settled, its
// value (Fulfilled) or reason (Rejected).
func (p *Promise) Outcome() (state State, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.value
}

// rejectionValue lets a Then handler reject its produced promise with an
// arbitrary reason rather than a Go error, since ECMAScript permits
// throwing or rejecting with any value. Reject wraps such a reason; Then
// unwraps it again before calling the result promise's reject so the
// original reason survives unchanged.
type rejectionValue struct{ reason any }

func (r *rejectionValue) Error() string { return "promise: rejected" }

// Reject lets a Then/Catch/Finally handler reject its produced promise
// with an arbitrary value instead of a Go error.
func Reject(reason any) error { return &rejectionValue{reason} }

// Then implements %PromiseObject.prototype.then%. Either handler may be
// nil: a nil onFulfilled is the identity reaction, a nil onRejected is a
// rethrough — the default reactions PerformPromiseThen substitutes when a handler
// is missing.
func (p *Promise) Then(onFulfilled, onRejected func(any) (any, error)) *Promise {
	result := &Promise{sched: p.sched, state: Pending}

	p.subscribe(
		func(v any) {
			if onFulfilled == nil {
				result.resolve(v)
				return
			}
			runReaction(result, onFulfilled, v)
		},
		func(r any) {
			if onRejected == nil {
				result.reject(r)
				return
			}
			runReaction(result, onRejected, r)
		},
	)
	return result
}

func runReaction(result *Promise, handler func(any) (any, error), arg any) {
	defer func() {
		if rec := recover(); rec != nil {
			result.reject(rec)
		}
	}()
	v, err := handler(arg)
	if err != nil {
		if rv, ok := err.(*rejectionValue); ok {
			result.reject(rv.reason)
		} else {
			result.reject(err)
		}
		return
	}
	result.resolve(v)
}

// Catch is Then(nil, onRejected).
func (p *Promise) Catch(onRejected func(any) (any, error)) *Promise {
	return p.Then(nil, onRejected)
}

// Finally implements %PromiseObject.prototype.finally%: onFinally runs on
// settlement regardless of outcome and observes no argument; the
// original settlement propagates through unchanged unless onFinally
// itself panics.
func (p *Promise) Finally(onFinally func()) *Promise {
	return p.Then(
		func(v any) (any, error) {
			onFinally()
			return v, nil
		},
		func(r any) (any, error) {
			onFinally()
			return nil, Reject(r)
		},
	)
}
