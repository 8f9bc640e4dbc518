package store

import (
	"slices"

	"github.com/google/uuid"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
)

// location points at a meeting inside the day index. It is a lookup
// key only: the bucket owns the meeting.
type location struct {
	Date calendar.Date
	ID   uuid.UUID
	Span meeting.Span
}

// titleIndex maps a title to every booked meeting carrying it,
// in booking order.
type titleIndex map[string][]location

func (t titleIndex) record(m meeting.Meeting) {
	t[m.Title] = append(t[m.Title], location{
		Date: m.Date(),
		ID:   m.ID,
		Span: m.Span,
	})
}

func (t titleIndex) locationsFor(title string) ([]location, bool) {
	locs, ok := t[title]
	return locs, ok
}

// forget drops the location of the given meeting and the title
// itself once nothing is left under it.
func (t titleIndex) forget(title string, id uuid.UUID) bool {
	locs, ok := t[title]
	if !ok {
		return false
	}

	idx := slices.IndexFunc(locs, func(l location) bool { return l.ID == id })
	if idx < 0 {
		return false
	}

	locs = slices.Delete(locs, idx, idx+1)
	if len(locs) == 0 {
		delete(t, title)
		return true
	}

	t[title] = locs
	return true
}
