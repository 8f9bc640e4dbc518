package clock

import "time"

// Clock gives the process-local wall clock used to interpret instants.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// New returns the system clock in loc, time.Local if loc is nil.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return stdTime{loc: loc}
}

// Load resolves an IANA zone name, empty name means time.Local.
func Load(zoneName string) (Clock, error) {
	if zoneName == "" {
		return New(nil), nil
	}

	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, err
	}
	return New(loc), nil
}

type stdTime struct {
	loc *time.Location
}

func (s stdTime) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s stdTime) Location() *time.Location {
	return s.loc
}

// Fixed always reports the same instant.
func Fixed(at time.Time) Clock {
	return fixed{at: at}
}

type fixed struct {
	at time.Time
}

func (f fixed) Now() time.Time {
	return f.at
}

func (f fixed) Location() *time.Location {
	return f.at.Location()
}

// FromEpoch converts unix seconds into a wall-clock instant of c.
func FromEpoch(c Clock, sec int64) time.Time {
	return time.Unix(sec, 0).In(c.Location())
}
