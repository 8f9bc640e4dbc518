// Package repo keeps an audit journal of bookings and cancellations.
package repo

import (
	"context"

	"github.com/nikmy/meetsched/pkg/logger"
)

type Journal interface {
	Record(ctx context.Context, e Event) error
	History(ctx context.Context, filters ...Filter) ([]Event, error)
	Close(ctx context.Context) error
}

// New connects to mongo, or returns a journal that drops every event
// when no URL is configured.
func New(ctx context.Context, cfg Config, log logger.Logger) (Journal, error) {
	if cfg.URL == "" {
		log.Infof("journal is disabled, no mongo url configured")
		return Nop(), nil
	}

	return newMongo(ctx, cfg, log)
}

func Nop() Journal {
	return nop{}
}

type nop struct{}

func (nop) Record(context.Context, Event) error { return nil }

func (nop) History(context.Context, ...Filter) ([]Event, error) { return nil, nil }

func (nop) Close(context.Context) error { return nil }
