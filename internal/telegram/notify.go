package telegram

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/telebot.v3"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/tools/await"
)

// watch reminds subscribers about the next meeting and sleeps until
// either another reminder is due or the calendar changes.
func (b *Bot) watch(ctx context.Context) {
	for {
		now := b.clock.Now()
		b.reminders.prune(now)

		waiters := []await.Awaiter{await.FromChan(b.scheduler.Changes())}

		next, err := b.peek(now)
		switch {
		case err == nil:
			due, wakeAt := b.reminders.plan(now, next)
			if due {
				b.remind(next, now)
			}
			waiters = append(waiters, await.Until(wakeAt, 0))
		case errors.IsKind(err, errors.NotFound):
			waiters = append(waiters, await.Until(tomorrow(now), 0))
		default:
			b.log.Error(errors.WrapFail(err, "peek next meeting"))
		}

		if !await.FirstOf(waiters...).Await(ctx) {
			return
		}
	}
}

// peek finds the meeting to plan reminders for. Lookups stay within
// the day once it has meetings, so an exhausted day is followed by a
// lookup from the next midnight.
func (b *Bot) peek(now time.Time) (meeting.Meeting, error) {
	// a meeting starting right now needs no reminder
	next, err := b.scheduler.PeekNext(now.Add(time.Nanosecond))
	if !errors.IsKind(err, errors.NotFound) {
		return next, err
	}
	return b.scheduler.PeekNext(tomorrow(now))
}

func tomorrow(now time.Time) time.Time {
	return calendar.DateOf(now).AddDays(1).In(now.Location())
}

func (b *Bot) remind(m meeting.Meeting, now time.Time) {
	left := m.Start.Sub(now).Round(time.Minute)
	msg := fmt.Sprintf("%s starts in %s", describe(m), left)

	for _, chat := range b.subscribers.list() {
		_, err := b.out.Send(telebot.ChatID(chat), msg)
		if err != nil {
			b.log.Warn(errors.WrapFailf(err, "remind chat %d", chat))
		}
	}
}

type progress struct {
	start time.Time
	fired int
}

// reminders tracks which leads were already used for each meeting.
type reminders struct {
	mu    sync.Mutex
	leads []time.Duration
	sent  map[uuid.UUID]progress
}

func newReminders(before []time.Duration) *reminders {
	leads := slices.DeleteFunc(slices.Clone(before), func(d time.Duration) bool { return d <= 0 })
	slices.SortFunc(leads, func(a, b time.Duration) int { return cmp.Compare(b, a) })

	return &reminders{
		leads: slices.Compact(leads),
		sent:  make(map[uuid.UUID]progress),
	}
}

// plan consumes every lead of m that is due at now and returns whether a
// reminder should go out, and when to look again: the next unused lead
// or the meeting start.
func (r *reminders) plan(now time.Time, m meeting.Meeting) (due bool, wakeAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.sent[m.ID]
	p.start = m.Start

	for p.fired < len(r.leads) && !now.Before(m.Start.Add(-r.leads[p.fired])) {
		p.fired++
		due = true
	}
	r.sent[m.ID] = p

	if p.fired < len(r.leads) {
		return due, m.Start.Add(-r.leads[p.fired])
	}
	return due, m.Start
}

// prune forgets meetings that have started.
func (r *reminders) prune(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.sent {
		if !p.start.After(now) {
			delete(r.sent, id)
		}
	}
}
