package repo

import (
	"time"

	"github.com/nikmy/meetsched/internal/meeting"
)

type Action string

const (
	ActionBooked    Action = "booked"
	ActionCancelled Action = "cancelled"
)

// Event is one journal entry. Entries are appended and never replayed.
type Event struct {
	Action    Action    `json:"action"     bson:"action"`
	MeetingID string    `json:"meeting_id" bson:"meeting_id"`
	Title     string    `json:"title"      bson:"title"`
	Start     time.Time `json:"start"      bson:"start"`
	End       time.Time `json:"end"        bson:"end"`
	At        time.Time `json:"at"         bson:"at"`
}

func NewEvent(action Action, m meeting.Meeting, at time.Time) Event {
	return Event{
		Action:    action,
		MeetingID: m.ID.String(),
		Title:     m.Title,
		Start:     m.Start,
		End:       m.End,
		At:        at,
	}
}
