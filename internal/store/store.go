package store

import (
	"slices"
	"sync"
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
	"github.com/nikmy/meetsched/pkg/errors"
)

// Store is the in-memory meeting repository. The day index owns the
// meetings, the title index only locates them; both change together
// under one lock.
type Store struct {
	mu sync.RWMutex
	tx Tx
}

func New() *Store {
	return &Store{
		tx: Tx{
			days:   newDayIndex(),
			titles: make(titleIndex),
		},
	}
}

// Txn runs do exclusively. do must not mutate after returning an error.
func (s *Store) Txn(do func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return do(&s.tx)
}

// View runs do with shared access, do must only read.
func (s *Store) View(do func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return do(&s.tx)
}

func (s *Store) Save(m meeting.Meeting) (meeting.Meeting, error) {
	var saved meeting.Meeting
	err := s.Txn(func(tx *Tx) (err error) {
		saved, err = tx.Save(m)
		return err
	})
	return saved, err
}

func (s *Store) Remove(title *string, start *time.Time) ([]meeting.Meeting, error) {
	var removed []meeting.Meeting
	err := s.Txn(func(tx *Tx) (err error) {
		removed, err = tx.Remove(title, start)
		return err
	})
	return removed, err
}

func (s *Store) Next(at time.Time) (m meeting.Meeting, ok bool) {
	_ = s.View(func(tx *Tx) error {
		m, ok = tx.Next(at)
		return nil
	})
	return m, ok
}

func (s *Store) DayMinutes(date calendar.Date) (minutes int64) {
	_ = s.View(func(tx *Tx) error {
		minutes = tx.DayMinutes(date)
		return nil
	})
	return minutes
}

func (s *Store) WeekMinutes(date calendar.Date) (minutes int64) {
	_ = s.View(func(tx *Tx) error {
		minutes = tx.WeekMinutes(date)
		return nil
	})
	return minutes
}

func (s *Store) List() (all []meeting.Meeting) {
	_ = s.View(func(tx *Tx) error {
		all = tx.List()
		return nil
	})
	return all
}

// Tx is the unlocked view of the store handed out by Txn and View.
type Tx struct {
	days   *dayIndex
	titles titleIndex
}

// Save books m on its start date. An overlap leaves both indexes
// untouched.
func (tx *Tx) Save(m meeting.Meeting) (meeting.Meeting, error) {
	if !m.Start.Before(m.End) {
		return meeting.Meeting{}, errors.New(errors.InvalidRange, "meeting end time must be after the start time")
	}

	b := tx.days.getOrCreate(m.Date())
	if !b.insert(m) {
		tx.days.dropIfEmpty(b)
		return meeting.Meeting{}, errors.New(errors.Conflict, "meeting was not inserted, it overlaps an existing one")
	}

	tx.titles.record(m)
	return m, nil
}

// Remove deletes meetings by title, optionally narrowed to an exact
// start, or by start alone.
func (tx *Tx) Remove(title *string, start *time.Time) ([]meeting.Meeting, error) {
	switch {
	case title != nil:
		return tx.removeByTitle(*title, start)
	case start != nil:
		return tx.removeByStart(*start)
	default:
		return nil, errors.New(
			errors.InvalidArgument,
			"no meeting metadata provided, provide at least meeting title or meeting start time",
		)
	}
}

func (tx *Tx) removeByTitle(title string, start *time.Time) ([]meeting.Meeting, error) {
	locs, ok := tx.titles.locationsFor(title)
	if !ok {
		return nil, errors.Newf(errors.NotFound, "meeting with title %s was not found", title)
	}

	var removed []meeting.Meeting
	for _, loc := range slices.Clone(locs) {
		if start != nil && !loc.Span.Start.Equal(*start) {
			continue
		}

		if m, ok := tx.removeAt(loc); ok {
			removed = append(removed, m)
		}
		tx.titles.forget(title, loc.ID)
	}

	return removed, nil
}

func (tx *Tx) removeByStart(start time.Time) ([]meeting.Meeting, error) {
	b, ok := tx.days.get(calendar.DateOf(start))
	if !ok {
		return nil, nil
	}

	m, ok := b.higher(start)
	if !ok || !m.Start.Equal(start) {
		return nil, nil
	}

	return tx.removeByTitle(m.Title, &m.Start)
}

func (tx *Tx) removeAt(loc location) (meeting.Meeting, bool) {
	b, ok := tx.days.get(loc.Date)
	if !ok {
		return meeting.Meeting{}, false
	}

	m, ok := b.remove(loc.ID, loc.Span)
	tx.days.dropIfEmpty(b)
	return m, ok
}

// Next returns the first meeting starting at or after at on its date.
// Later dates are consulted only when the date of at has no meetings
// at all, so an exhausted day yields nothing.
func (tx *Tx) Next(at time.Time) (meeting.Meeting, bool) {
	date := calendar.DateOf(at)

	if b, ok := tx.days.get(date); ok {
		return b.higher(at)
	}

	b, ok := tx.days.after(date)
	if !ok {
		return meeting.Meeting{}, false
	}

	first, _, ok := b.firstAndLast()
	return first, ok
}

// List returns every booked meeting in chronological order.
func (tx *Tx) List() []meeting.Meeting {
	var all []meeting.Meeting
	tx.days.ascend(func(b *bucket) bool {
		b.ascend(func(m meeting.Meeting) bool {
			all = append(all, m)
			return true
		})
		return true
	})
	return all
}

// Len counts booked meetings.
func (tx *Tx) Len() int {
	n := 0
	tx.days.ascend(func(b *bucket) bool {
		n += b.len()
		return true
	})
	return n
}

// Titles counts distinct titles known to the title index.
func (tx *Tx) Titles() int {
	return len(tx.titles)
}

// Days counts dates holding at least one meeting.
func (tx *Tx) Days() int {
	return tx.days.len()
}
