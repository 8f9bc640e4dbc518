package api

import (
	"context"
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/internal/repo"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type Scheduler interface {
	Book(ctx context.Context, title string, start, end time.Time) (meeting.Meeting, error)
	Cancel(ctx context.Context, title *string, start *time.Time) ([]meeting.Meeting, error)
	PeekNext(at time.Time) (meeting.Meeting, error)
	List() []meeting.Meeting
}

type History interface {
	History(ctx context.Context, filters ...repo.Filter) ([]repo.Event, error)
}
