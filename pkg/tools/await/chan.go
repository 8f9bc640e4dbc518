package await

import (
	"context"
	"reflect"
)

// FromChan waits for the next value received from ch.
func FromChan[T any](ch <-chan T) Awaiter {
	return &chanAwaiter[T]{
		ch: ch,
	}
}

type chanAwaiter[T any] struct {
	val T
	ok  bool
	ch  <-chan T
}

func (a *chanAwaiter[T]) Await(ctx context.Context) (waited bool) {
	select {
	case <-ctx.Done():
		return false
	case a.val, a.ok = <-a.ch:
		return true
	}
}

func (a *chanAwaiter[T]) Value() (any, bool) {
	return a.val, a.ok
}

func (a *chanAwaiter[T]) bind() reflect.SelectCase {
	return reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(a.ch),
	}
}

func (a *chanAwaiter[T]) release() {}
