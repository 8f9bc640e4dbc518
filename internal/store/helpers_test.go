package store

import (
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/calendar"
)

// friday is 2020-06-19, the week runs from monday 2020-06-15.
var friday = calendar.Date{Year: 2020, Month: time.June, Day: 19}

func at(d calendar.Date, h, m int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, h, m, 0, 0, time.UTC)
}

func newMeeting(title string, d calendar.Date, h1, m1, h2, m2 int) meeting.Meeting {
	return meeting.New(title, at(d, h1, m1), at(d, h2, m2))
}

func ptr[T any](v T) *T {
	return &v
}
