// Package ics renders the booked calendar as iCalendar.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/nikmy/meetsched/internal/meeting"
)

const productID = "-//meetsched//calendar//EN"

// Export builds a VCALENDAR with one VEVENT per meeting. Event UIDs are
// meeting ids, so repeated exports of the same meeting stay stable.
func Export(meetings []meeting.Meeting, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, m := range meetings {
		event := cal.AddEvent(m.ID.String())
		event.SetDtStampTime(stamp)
		event.SetStartAt(m.Start)
		event.SetEndAt(m.End)
		event.SetSummary(m.Title)
	}

	return cal.Serialize()
}
