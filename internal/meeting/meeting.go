// Package meeting holds the booked meeting value and the interval
// ordering the store is built on.
package meeting

import (
	"time"

	"github.com/google/uuid"

	"github.com/nikmy/meetsched/pkg/calendar"
)

// Span is a half-open wall-clock interval [Start, End).
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Probe is the zero-length span [at, at) used for successor queries.
func Probe(at time.Time) Span {
	return Span{Start: at, End: at}
}

// Minutes is the whole number of minutes between Start and End.
func (s Span) Minutes() int64 {
	return int64(s.End.Sub(s.Start) / time.Minute)
}

func (s Span) Date() calendar.Date {
	return calendar.DateOf(s.Start)
}

// Within reports whether s lies inside outer, touching ends included.
func (s Span) Within(outer Span) bool {
	return !s.Start.Before(outer.Start) && !s.End.After(outer.End)
}

// Compare orders spans so that overlapping spans are equal:
// it returns -1 if a ends before b starts, +1 if a starts
// after b ends, and 0 if they overlap. Touching ends do
// not overlap.
//
// This is not a strict weak ordering across overlapping chains,
// but it is consistent on any set of pairwise disjoint spans plus
// a single probe, which is all the store ever compares.
func Compare(a, b Span) int {
	if !a.End.After(b.Start) {
		return -1
	}
	if !a.Start.Before(b.End) {
		return 1
	}
	return 0
}

func Overlap(a, b Span) bool {
	return Compare(a, b) == 0
}

type Meeting struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Span
}

// New assigns a fresh identity, validity of the span is checked by policy.
func New(title string, start, end time.Time) Meeting {
	return Meeting{
		ID:    uuid.New(),
		Title: title,
		Span:  Span{Start: start, End: end},
	}
}

// Less is the btree ordering of meetings by their spans.
func Less(a, b Meeting) bool {
	return Compare(a.Span, b.Span) < 0
}
