// Package policy decides whether a candidate meeting may be booked.
package policy

import (
	"fmt"
	"slices"
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
	"github.com/nikmy/meetsched/pkg/errors"
)

// Load is the read side of the store the caps are computed from.
type Load interface {
	Envelope(date calendar.Date) (meeting.Span, bool)
	DayMinutes(date calendar.Date) int64
	WeekMinutes(date calendar.Date) int64
}

type Policy struct {
	cfg Config
}

func New(cfg Config) *Policy {
	return &Policy{cfg: cfg.withDefaults()}
}

func (p *Policy) Config() Config {
	return p.cfg
}

// Check runs the rules in order and returns the first violation as an
// InvalidRange error. A candidate lying inside the day's existing
// envelope adds nothing to the loads and skips both caps.
func (p *Policy) Check(load Load, c meeting.Span) error {
	if !c.End.After(c.Start) {
		return errors.New(errors.InvalidRange, "meeting end time cannot be before the meeting start time")
	}

	minutes := c.Minutes()
	if minutes < inMinutes(p.cfg.MinDuration) || minutes > inMinutes(p.cfg.MaxDuration) {
		return errors.Newf(
			errors.InvalidRange,
			"meeting cannot last for more than %s, and for less than %s",
			humanize(p.cfg.MaxDuration), humanize(p.cfg.MinDuration),
		)
	}

	date := calendar.DateOf(c.Start)
	if calendar.DateOf(c.End) != date {
		return errors.Newf(
			errors.InvalidRange,
			"meeting ends on a different day, meeting should end before %s",
			date.EndOfDay(c.Start.Location()).Format(time.DateTime),
		)
	}

	if weekday := date.Weekday(); slices.Contains(p.cfg.ClosedOn, weekday) {
		return errors.Newf(errors.InvalidRange, "meeting cannot be scheduled on a %s", weekday)
	}

	if envelope, ok := load.Envelope(date); ok && c.Within(envelope) {
		return nil
	}

	if load.DayMinutes(date)+minutes > inMinutes(p.cfg.DayLimit) {
		return errors.Newf(
			errors.InvalidRange,
			"meeting exceeds %s business hour limit for the day %s",
			humanize(p.cfg.DayLimit), date,
		)
	}

	if load.WeekMinutes(date)+minutes > inMinutes(p.cfg.WeekLimit) {
		return errors.Newf(
			errors.InvalidRange,
			"meeting exceeds %s business hour limit for the week %s",
			humanize(p.cfg.WeekLimit), date.StartOfWeek(),
		)
	}

	return nil
}

func inMinutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}

func humanize(d time.Duration) string {
	if d%time.Hour == 0 {
		return plural(int64(d/time.Hour), "hour")
	}
	return plural(inMinutes(d), "minute")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
