package telegram

import (
	"context"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/meetsched/internal/meeting"
)

type Scheduler interface {
	Book(ctx context.Context, title string, start, end time.Time) (meeting.Meeting, error)
	Cancel(ctx context.Context, title *string, start *time.Time) ([]meeting.Meeting, error)
	PeekNext(at time.Time) (meeting.Meeting, error)
	Changes() <-chan struct{}
}

type sender interface {
	Send(to telebot.Recipient, what any, opts ...any) (*telebot.Message, error)
}
