package store

import (
	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
)

// businessWeekDays counts Monday through Saturday, Sunday never
// contributes to the weekly load.
const businessWeekDays = 6

// Envelope returns the span from the first start to the last end
// booked on date.
func (tx *Tx) Envelope(date calendar.Date) (meeting.Span, bool) {
	b, ok := tx.days.get(date)
	if !ok {
		return meeting.Span{}, false
	}
	return b.envelope()
}

// DayMinutes is the length of the day's envelope. Gaps between
// meetings count towards it.
func (tx *Tx) DayMinutes(date calendar.Date) int64 {
	env, ok := tx.Envelope(date)
	if !ok {
		return 0
	}
	return env.Minutes()
}

// WeekMinutes sums DayMinutes over the business week containing date.
func (tx *Tx) WeekMinutes(date calendar.Date) int64 {
	monday := date.StartOfWeek()

	var total int64
	for i := 0; i < businessWeekDays; i++ {
		total += tx.DayMinutes(monday.AddDays(i))
	}
	return total
}
