package await

import (
	"context"
	"reflect"
)

// FirstOf completes as soon as any of waiters does. Combinators do not nest.
func FirstOf(waiters ...Awaiter) *FirstOfAwaiter {
	cases := make([]reflect.SelectCase, 0, len(waiters)+1)
	for _, a := range waiters {
		cases = append(cases, a.bind())
	}

	return &FirstOfAwaiter{waiters: waiters, cases: cases, chosen: -1}
}

type FirstOfAwaiter struct {
	waiters []Awaiter
	cases   []reflect.SelectCase

	chosen int
	val    any
	ok     bool
}

func (a *FirstOfAwaiter) Await(ctx context.Context) (waited bool) {
	defer func() {
		for _, w := range a.waiters {
			w.release()
		}
	}()

	a.cases = append(a.cases, reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(ctx.Done()),
	})
	defer func() { a.cases = a.cases[:len(a.cases)-1] }()

	choice, val, ok := reflect.Select(a.cases)
	if choice == len(a.cases)-1 {
		a.chosen = -1
		return false
	}

	a.chosen, a.ok = choice, ok
	if val.IsValid() {
		a.val = val.Interface()
	}
	return true
}

// Chosen is the index of the waiter that completed, -1 if none did.
func (a *FirstOfAwaiter) Chosen() int {
	return a.chosen
}

func (a *FirstOfAwaiter) Value() (any, bool) {
	return a.val, a.ok
}

func (a *FirstOfAwaiter) bind() reflect.SelectCase {
	panic("await: avoid combine combinators")
}

func (a *FirstOfAwaiter) release() {}
