package store

import (
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
)

const degree = 8

// bucket is the ordered set of meetings booked on one date. Meetings
// that overlap compare equal, so the tree itself refuses conflicts.
type bucket struct {
	date  calendar.Date
	items *btree.BTreeG[meeting.Meeting]
}

func newBucket(date calendar.Date) *bucket {
	return &bucket{
		date:  date,
		items: btree.NewG(degree, meeting.Less),
	}
}

// insert adds m unless it overlaps a meeting already in the bucket.
func (b *bucket) insert(m meeting.Meeting) bool {
	if _, taken := b.items.Get(m); taken {
		return false
	}

	b.items.ReplaceOrInsert(m)
	return true
}

func (b *bucket) conflicting(s meeting.Span) (meeting.Meeting, bool) {
	return b.items.Get(meeting.Meeting{Span: s})
}

func (b *bucket) firstAndLast() (first, last meeting.Meeting, ok bool) {
	first, ok = b.items.Min()
	if !ok {
		return first, last, false
	}

	last, _ = b.items.Max()
	return first, last, true
}

// envelope spans from the earliest start to the latest end.
func (b *bucket) envelope() (meeting.Span, bool) {
	first, last, ok := b.firstAndLast()
	if !ok {
		return meeting.Span{}, false
	}

	return meeting.Span{Start: first.Start, End: last.End}, true
}

// higher returns the first meeting strictly after the zero-length
// probe [at, at). A meeting in progress at the instant overlaps the
// probe and is skipped.
func (b *bucket) higher(at time.Time) (meeting.Meeting, bool) {
	probe := meeting.Meeting{Span: meeting.Probe(at)}

	var (
		found meeting.Meeting
		ok    bool
	)

	b.items.AscendGreaterOrEqual(probe, func(m meeting.Meeting) bool {
		if !meeting.Less(probe, m) {
			return true
		}

		found, ok = m, true
		return false
	})

	return found, ok
}

// remove deletes the meeting with the given identity occupying span.
func (b *bucket) remove(id uuid.UUID, span meeting.Span) (meeting.Meeting, bool) {
	stored, ok := b.conflicting(span)
	if !ok || stored.ID != id {
		return meeting.Meeting{}, false
	}

	return b.items.Delete(stored)
}

func (b *bucket) len() int {
	return b.items.Len()
}

func (b *bucket) ascend(iter func(m meeting.Meeting) bool) {
	b.items.Ascend(iter)
}
