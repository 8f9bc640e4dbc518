package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the wall-clock date of ts in its own location.
func DateOf(ts time.Time) Date {
	y, m, d := ts.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	ts, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(ts), nil
}

func (d Date) String() string {
	return d.utc().Format(dateLayout)
}

// In returns the beginning of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDay returns the last representable instant of the day in loc.
func (d Date) EndOfDay(loc *time.Location) time.Time {
	return d.AddDays(1).In(loc).Add(-time.Nanosecond)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// StartOfWeek returns Monday of the ISO week containing d.
func (d Date) StartOfWeek() Date {
	shift := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-shift)
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func (d Date) utc() time.Time {
	return d.In(time.UTC)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
