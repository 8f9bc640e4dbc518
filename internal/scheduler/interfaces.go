package scheduler

import (
	"context"
	"time"

	"github.com/nikmy/meetsched/internal/repo"
	"github.com/nikmy/meetsched/pkg/errors"
)

type Journal interface {
	Record(ctx context.Context, e repo.Event) error
}

type Metrics interface {
	Booked()
	Rejected(kind errors.Kind)
	Cancelled(n int)
	Observe(operation string, took time.Duration)
}
