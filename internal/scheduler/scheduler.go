// Package scheduler is the booking service on top of the meeting store.
package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/internal/policy"
	"github.com/nikmy/meetsched/internal/repo"
	"github.com/nikmy/meetsched/internal/store"
	"github.com/nikmy/meetsched/pkg/calendar"
	"github.com/nikmy/meetsched/pkg/clock"
	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/logger"
)

func New(
	log logger.Logger,
	meetings *store.Store,
	rules *policy.Policy,
	clk clock.Clock,
	journal Journal,
	metrics Metrics,
) *Service {
	return &Service{
		store:   meetings,
		policy:  rules,
		clock:   clk,
		journal: journal,
		metrics: metrics,
		log:     log.With("scheduler"),
		changes: make(chan struct{}, 1),
	}
}

type Service struct {
	store   *store.Store
	policy  *policy.Policy
	clock   clock.Clock
	journal Journal
	metrics Metrics
	log     logger.Logger

	changes chan struct{}
}

// Book admits a meeting if it passes policy and does not overlap any
// booked one. The check and the insertion happen under one lock.
func (s *Service) Book(ctx context.Context, title string, start, end time.Time) (meeting.Meeting, error) {
	defer s.observe("book", s.clock.Now())

	if strings.TrimSpace(title) == "" {
		s.metrics.Rejected(errors.InvalidArgument)
		return meeting.Meeting{}, errors.New(errors.InvalidArgument, "meeting title must not be empty")
	}

	candidate := meeting.New(title, start, end)

	err := s.store.Txn(func(tx *store.Tx) error {
		err := s.policy.Check(tx, candidate.Span)
		if err != nil {
			return err
		}

		candidate, err = tx.Save(candidate)
		return err
	})
	if err != nil {
		s.metrics.Rejected(errors.KindOf(err))
		s.log.Infof("rejected %q [%s, %s): %s", title, start, end, errors.Reason(err))
		return meeting.Meeting{}, err
	}

	s.metrics.Booked()
	s.log.Debugf("booked %q [%s, %s) as %s", title, start, end, candidate.ID)
	s.record(ctx, repo.ActionBooked, candidate)
	s.notify()

	return candidate, nil
}

// Cancel removes meetings by title and/or exact start. Removing nothing
// is not an error unless the title is unknown.
func (s *Service) Cancel(ctx context.Context, title *string, start *time.Time) ([]meeting.Meeting, error) {
	defer s.observe("cancel", s.clock.Now())

	removed, err := s.store.Remove(title, start)
	if err != nil {
		return nil, err
	}

	if len(removed) == 0 {
		return nil, nil
	}

	s.metrics.Cancelled(len(removed))
	for _, m := range removed {
		s.log.Debugf("cancelled %q [%s, %s)", m.Title, m.Start, m.End)
		s.record(ctx, repo.ActionCancelled, m)
	}
	s.notify()

	return removed, nil
}

// PeekNext returns the first meeting starting after at.
func (s *Service) PeekNext(at time.Time) (meeting.Meeting, error) {
	m, ok := s.store.Next(at)
	if !ok {
		return meeting.Meeting{}, errors.Newf(errors.NotFound, "no meetings are scheduled after %s", at.Format(time.DateTime))
	}
	return m, nil
}

func (s *Service) DayLoad(date calendar.Date) time.Duration {
	return time.Duration(s.store.DayMinutes(date)) * time.Minute
}

func (s *Service) WeekLoad(date calendar.Date) time.Duration {
	return time.Duration(s.store.WeekMinutes(date)) * time.Minute
}

func (s *Service) List() []meeting.Meeting {
	return s.store.List()
}

func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Changes fires after every successful booking or cancellation.
// Signals coalesce when nobody is listening.
func (s *Service) Changes() <-chan struct{} {
	return s.changes
}

func (s *Service) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *Service) record(ctx context.Context, action repo.Action, m meeting.Meeting) {
	err := s.journal.Record(ctx, repo.NewEvent(action, m, s.clock.Now()))
	if err != nil {
		s.log.Warn(errors.WrapFailf(err, "journal %s meeting %s", action, m.ID))
	}
}

func (s *Service) observe(operation string, started time.Time) {
	s.metrics.Observe(operation, s.clock.Now().Sub(started))
}
