package promise

import (
	"errors"
	"fmt"
	"testing"
)

func TestThenOrderingFIFO(t *testing.T) {
	sched := NewScheduler()
	p := Resolved(sched, 1)

	var log []string
	p.Then(func(v any) (any, error) {
		log = append(log, fmt.Sprintf("A:%v", v))
		return nil, nil
	}, nil)
	p.Then(func(v any) (any, error) {
		log = append(log, fmt.Sprintf("B:%v", v))
		return nil, nil
	}, nil)
	sched.Drain()

	want := []string{"A:1", "B:1"}
	if len(log) != len(want) || log[0] != want[0] || log[1] != want[1] {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestRejectedPromisePropagatesThroughCatch(t *testing.T) {
	sched := NewScheduler()
	p := Rejected(sched, "boom")

	var caught any
	p.Catch(func(r any) (any, error) {
		caught = r
		return "recovered", nil
	})
	sched.Drain()

	if caught != "boom" {
		t.Errorf("caught = %v, want \"boom\"", caught)
	}
}

func TestThenPropagatesRejectionWhenNoHandler(t *testing.T) {
	sched := NewScheduler()
	p := Rejected(sched, "boom")

	chained := p.Then(func(v any) (any, error) {
		t.Error("onFulfilled should not run on a rejected promise")
		return nil, nil
	}, nil)
	sched.Drain()

	state, value := chained.Outcome()
	if state != Rejected || value != "boom" {
		t.Errorf("chained outcome = (%v, %v), want (Rejected, \"boom\")", state, value)
	}
}

func TestHandlerErrorRejectsResult(t *testing.T) {
	sched := NewScheduler()
	p := Resolved(sched, 1)

	failure := errors.New("handler failed")
	chained := p.Then(func(v any) (any, error) {
		return nil, failure
	}, nil)
	sched.Drain()

	state, value := chained.Outcome()
	if state != Rejected || value != failure {
		t.Errorf("chained outcome = (%v, %v), want (Rejected, %v)", state, value, failure)
	}
}

func TestHandlerPanicRejectsResult(t *testing.T) {
	sched := NewScheduler()
	p := Resolved(sched, 1)

	chained := p.Then(func(v any) (any, error) {
		panic("handler panicked")
	}, nil)
	sched.Drain()

	state, value := chained.Outcome()
	if state != Rejected || value != "handler panicked" {
		t.Errorf("chained outcome = (%v, %v), want (Rejected, \"handler panicked\")", state, value)
	}
}

func TestResolveWithThenableAdoptsItsState(t *testing.T) {
	sched := NewScheduler()
	inner := Resolved(sched, "inner value")
	outer := New(sched, func(resolve func(any), reject func(any)) {
		resolve(inner)
	})

	state, value := outer.Outcome()
	if state != Pending {
		t.Fatalf("outer should stay pending until the thenable is drained, got %v", state)
	}
	sched.Drain()

	state, value = outer.Outcome()
	if state != Fulfilled || value != "inner value" {
		t.Errorf("outer outcome = (%v, %v), want (Fulfilled, \"inner value\")", state, value)
	}
}

func TestFinallyPropagatesFulfillment(t *testing.T) {
	sched := NewScheduler()
	p := Resolved(sched, 42)

	var ran bool
	chained := p.Finally(func() { ran = true })
	sched.Drain()

	state, value := chained.Outcome()
	if !ran || state != Fulfilled || value != 42 {
		t.Errorf("ran=%v outcome=(%v,%v), want ran=true (Fulfilled, 42)", ran, state, value)
	}
}

func TestFinallyPropagatesRejection(t *testing.T) {
	sched := NewScheduler()
	p := Rejected(sched, "reason")

	var ran bool
	chained := p.Finally(func() { ran = true })
	sched.Drain()

	state, value := chained.Outcome()
	if !ran || state != Rejected || value != "reason" {
		t.Errorf("ran=%v outcome=(%v,%v), want ran=true (Rejected, \"reason\")", ran, state, value)
	}
}

func TestSecondSettleIsNoOp(t *testing.T) {
	sched := NewScheduler()
	var resolve, reject func(any)
	p := New(sched, func(res func(any), rej func(any)) {
		resolve = res
		reject = rej
	})
	resolve(1)
	reject("ignored")
	sched.Drain()

	state, value := p.Outcome()
	if state != Fulfilled || value != 1 {
		t.Errorf("outcome = (%v, %v), want (Fulfilled, 1); second settle must be a no-op", state, value)
	}
}

func TestAllResolvesInInputOrder(t *testing.T) {
	sched := NewScheduler()
	a := Resolved(sched, "a")
	b := Resolved(sched, "b")
	result := All(sched, []*Promise{a, b})
	sched.Drain()

	state, value := result.Outcome()
	if state != Fulfilled {
		t.Fatalf("state = %v, want Fulfilled", state)
	}
	values := value.([]any)
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Errorf("values = %v, want [a b]", values)
	}
}

func TestAllRejectsOnFirstRejection(t *testing.T) {
	sched := NewScheduler()
	a := Resolved(sched, "a")
	b := Rejected(sched, "b failed")
	result := All(sched, []*Promise{a, b})
	sched.Drain()

	state, value := result.Outcome()
	if state != Rejected || value != "b failed" {
		t.Errorf("outcome = (%v, %v), want (Rejected, \"b failed\")", state, value)
	}
}

func TestAllEmptyResolvesImmediately(t *testing.T) {
	sched := NewScheduler()
	result := All(sched, nil)
	state, value := result.Outcome()
	values, ok := value.([]any)
	if state != Fulfilled || !ok || len(values) != 0 {
		t.Errorf("outcome = (%v, %v), want (Fulfilled, [])", state, value)
	}
}

func TestRaceSettlesWithFirst(t *testing.T) {
	sched := NewScheduler()
	slow := New(sched, func(resolve func(any), reject func(any)) {
		sched.enqueue(func() { resolve("slow") })
	})
	fast := Resolved(sched, "fast")
	result := Race(sched, []*Promise{slow, fast})
	sched.Drain()

	state, value := result.Outcome()
	if state != Fulfilled || value != "fast" {
		t.Errorf("outcome = (%v, %v), want (Fulfilled, \"fast\")", state, value)
	}
}

func TestAllSettledNeverRejects(t *testing.T) {
	sched := NewScheduler()
	a := Resolved(sched, "a")
	b := Rejected(sched, "b failed")
	result := AllSettled(sched, []*Promise{a, b})
	sched.Drain()

	state, value := result.Outcome()
	if state != Fulfilled {
		t.Fatalf("state = %v, want Fulfilled", state)
	}
	results := value.([]SettledResult)
	if results[0].Status != "fulfilled" || results[0].Value != "a" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Status != "rejected" || results[1].Reason != "b failed" {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestAnyResolvesWithFirstFulfillment(t *testing.T) {
	sched := NewScheduler()
	a := Rejected(sched, "a failed")
	b := Resolved(sched, "b")
	result := Any(sched, []*Promise{a, b})
	sched.Drain()

	state, value := result.Outcome()
	if state != Fulfilled || value != "b" {
		t.Errorf("outcome = (%v, %v), want (Fulfilled, \"b\")", state, value)
	}
}

func TestAnyRejectsWithAggregateErrorWhenAllReject(t *testing.T) {
	sched := NewScheduler()
	a := Rejected(sched, "a failed")
	b := Rejected(sched, "b failed")
	result := Any(sched, []*Promise{a, b})
	sched.Drain()

	state, value := result.Outcome()
	if state != Rejected {
		t.Fatalf("state = %v, want Rejected", state)
	}
	agg, ok := value.(*AggregateError)
	if !ok {
		t.Fatalf("reason = %T, want *AggregateError", value)
	}
	if len(agg.Errors) != 2 || agg.Errors[0] != "a failed" || agg.Errors[1] != "b failed" {
		t.Errorf("agg.Errors = %v, want [a failed, b failed]", agg.Errors)
	}
}
