package await

import (
	"context"
	"reflect"
)

type Awaiter interface {
	Value() (any, bool)
	Await(ctx context.Context) (waited bool)
	bind() reflect.SelectCase
	release()
}

// noAwaiter is already done.
type noAwaiter struct{}

func (noAwaiter) Await(context.Context) bool {
	return true
}

func (noAwaiter) Value() (any, bool) {
	return struct{}{}, false
}

func (noAwaiter) bind() reflect.SelectCase {
	ch := make(chan struct{})
	close(ch)
	return reflect.SelectCase{
		Chan: reflect.ValueOf(ch),
		Dir:  reflect.SelectRecv,
	}
}

func (noAwaiter) release() {}
