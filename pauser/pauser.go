// Package pauser implements the suspend/resume machinery behind
// generators, async functions, async generators, and top-level await:
// capturing a suspended execution, driving it forward one
// suspend-point step at a time, and converting its eventual completion
// (return, throw, or another suspend) into the right shape for its
// owner.
//
// No example in the retrieved corpus models this: every reference
// engine runs a computation to completion on the calling goroutine.
// Go's own idiomatic way to express "pause a computation, hand control
// back, resume it later" without hand-rolling a bytecode interpreter and
// an explicit frame stack is to run the computation on its own
// goroutine and synchronize suspend/resume as a blocking channel
// handoff — so that is what a Pauser wraps. The owning goroutine blocks
// on Start/Resume; the body's goroutine blocks inside Yield. Exactly one
// side is ever runnable at a time, which gives the same single-threaded,
// run-to-completion-per-step semantics the engine requires without an actual
// single thread.
package pauser

import "fmt"

// OwnerKind identifies what kind of suspendable frame a Pauser backs,
// since that governs how its eventual completion is surfaced (an
// IteratorResult, a resolved/rejected promise, ...).
type OwnerKind int

const (
	OwnerGenerator OwnerKind = iota
	OwnerAsyncFunction
	OwnerAsyncGenerator
	OwnerTopLevelAwait
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerGenerator:
		return "generator"
	case OwnerAsyncFunction:
		return "async function"
	case OwnerAsyncGenerator:
		return "async generator"
	case OwnerTopLevelAwait:
		return "top-level await"
	default:
		return "unknown owner"
	}
}

// ResumeState is the completion kind a Start/Resume call delivers at a
// suspend point, matching the three discriminants the resume protocol encodes as small
// integers.
type ResumeState int

const (
	ResumeNormal ResumeState = iota
	ResumeThrow
	ResumeReturn
)

// Yield is the callback a Body calls to suspend: it hands value back to
// whichever goroutine called Start or Resume, and blocks until that
// caller drives the Pauser forward again. The returned state tells the
// body whether it is being resumed normally, asked to throw at this
// point (ResumeThrow — Yield itself panics with the thrown value so a
// surrounding Go recover behaves like a caught exception at the yield
// expression), or asked to return early (ResumeReturn — Yield panics
// with a signal invoke() converts into the frame's final result).
type Yield func(value any) (resumeValue any, state ResumeState)

// Body is the suspendable computation itself: a generator or async
// function, written as ordinary Go code that calls yield wherever the
// source language has a yield/await expression.
type Body func(yield Yield) (result any, err error)

// Outcome reports what happened after Start or Resume drove a Pauser
// forward by one suspend-point step.
type Outcome struct {
	// Paused is true if the body suspended again (Value is the yielded
	// value); false if it ran to completion (Value is the return value,
	// or Err is the thrown error).
	Paused bool
	Value  any
	Err    error
}

type resumeMsg struct {
	value any
	state ResumeState
}

type pauseMsg struct {
	paused bool
	value  any
	err    error
}

// Pauser captures one suspendable execution.
type Pauser struct {
	Owner OwnerKind

	body    Body
	in      chan resumeMsg
	out     chan pauseMsg
	started bool
	live    bool
}

// New returns a Pauser for body, not yet started.
func New(owner OwnerKind, body Body) *Pauser {
	return &Pauser{
		Owner: owner,
		body:  body,
		in:    make(chan resumeMsg),
		out:   make(chan pauseMsg),
	}
}

// Start begins executing the body on a fresh goroutine and drives it to
// its first suspend point or completion. Calling Start more than once on
// the same Pauser panics.
func (p *Pauser) Start() Outcome {
	if p.started {
		panic("pauser: Start called on an already-started Pauser")
	}
	p.started = true
	p.live = true
	go p.run()
	return p.awaitOut()
}

// Resume delivers value and state at the body's current suspend point
// and drives it forward by one more step, the way start() re-enters the
// interpreter at its recorded resume position. Calling Resume before Start, or on a Pauser whose
// body has already completed, panics.
func (p *Pauser) Resume(value any, state ResumeState) Outcome {
	if !p.started {
		panic("pauser: Resume called before Start")
	}
	if !p.live {
		panic("pauser: Resume called on a Pauser that already completed")
	}
	p.in <- resumeMsg{value: value, state: state}
	return p.awaitOut()
}

// Live reports whether the body has suspended (true) or run to
// completion (false). Undefined before the first Start.
func (p *Pauser) Live() bool { return p.live }

func (p *Pauser) awaitOut() Outcome {
	msg := <-p.out
	if !msg.paused {
		p.live = false
	}
	return Outcome{Paused: msg.paused, Value: msg.value, Err: msg.err}
}

func (p *Pauser) run() {
	result, err := p.invoke()
	p.out <- pauseMsg{paused: false, value: result, err: err}
}

// throwSignal/returnSignal are panic payloads Yield raises to inject a
// throw or an early return at the suspend point; invoke's recover turns
// them back into an ordinary (result, err) pair so a Body that does not
// itself recover still completes the frame correctly.
type throwSignal struct{ value any }
type returnSignal struct{ value any }

func (p *Pauser) invoke() (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case returnSignal:
				result, err = v.value, nil
			case throwSignal:
				result, err = nil, asError(v.value)
			default:
				panic(r)
			}
		}
	}()

	yield := func(value any) (any, ResumeState) {
		p.out <- pauseMsg{paused: true, value: value}
		msg := <-p.in
		switch msg.state {
		case ResumeThrow:
			panic(throwSignal{msg.value})
		case ResumeReturn:
			panic(returnSignal{msg.value})
		}
		return msg.value, msg.state
	}

	return p.body(yield)
}

// ThrownValue wraps an arbitrary throw/return reason that is not itself
// a Go error, since ECMAScript permits throwing any value while Go's
// error interface requires an Error() string method.
type ThrownValue struct {
	Value any
}

func (e *ThrownValue) Error() string { return fmt.Sprintf("thrown: %v", e.Value) }

func asError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &ThrownValue{Value: v}
}
