package await

import (
	"context"
	"reflect"
	"time"
)

type timerAwaiter struct {
	*time.Timer
}

// Until waits for the wall clock to reach ts. Waits shorter than
// minWaitingTime complete immediately.
func Until(ts time.Time, minWaitingTime time.Duration) Awaiter {
	waitTime := time.Until(ts)
	if waitTime < minWaitingTime {
		return noAwaiter{}
	}
	return &timerAwaiter{time.NewTimer(waitTime)}
}

func (t *timerAwaiter) Await(ctx context.Context) bool {
	defer t.release()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (t *timerAwaiter) Value() (any, bool) {
	return struct{}{}, false
}

func (t *timerAwaiter) bind() reflect.SelectCase {
	return reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(t.C),
	}
}

func (t *timerAwaiter) release() {
	t.Stop()
}
