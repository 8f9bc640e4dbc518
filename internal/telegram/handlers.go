package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vitaliy-ukiru/fsm-telebot"
	"github.com/vitaliy-ukiru/fsm-telebot/storages/memory"
	"gopkg.in/telebot.v3"

	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/pkg/errors"
)

const (
	initialState = fsm.DefaultState

	bookReadTitleState fsm.State = "bookReadTitle"
	bookReadSlotState  fsm.State = "bookReadSlot"

	cancelReadTitleState fsm.State = "cancelReadTitle"
)

const (
	titleKey = "title"

	slotLayout = "02.01.2006 15:04"
	timeLayout = "15:04"
)

const usage = "" +
	"Available commands:\n" +
	"/next - show the next meeting\n" +
	"/book - book a meeting\n" +
	"/cancel - cancel meetings by title\n" +
	"/mute - stop meeting reminders\n"

func (b *Bot) setupHandlers(ctx context.Context) {
	manager := fsm.NewManager(
		b.bot,
		nil,
		memory.NewStorage(),
		nil,
	)

	manager.Bind(telebot.OnText, initialState, b.start)
	manager.Bind("/start", fsm.AnyState, b.start)
	manager.Bind("/mute", fsm.AnyState, b.mute)

	manager.Bind("/next", fsm.AnyState, b.next)

	manager.Bind("/book", fsm.AnyState, b.startBook)
	manager.Bind(telebot.OnText, bookReadTitleState, b.bookReadTitle)
	manager.Bind(telebot.OnText, bookReadSlotState, func(c telebot.Context, s fsm.Context) error {
		return b.book(ctx, c, s)
	})

	manager.Bind("/cancel", fsm.AnyState, b.startCancel)
	manager.Bind(telebot.OnText, cancelReadTitleState, func(c telebot.Context, s fsm.Context) error {
		return b.cancel(ctx, c, s)
	})
}

func (b *Bot) setState(s fsm.Context, target fsm.State) {
	err := s.Set(target)
	if err != nil {
		b.log.Warn(errors.WrapFailf(err, "set state to %q", target))
	}
}

func (b *Bot) final(c telebot.Context, s fsm.Context, msg string, opts ...any) error {
	b.setState(s, initialState)
	return c.Send(msg, opts...)
}

func (b *Bot) fail(c telebot.Context, s fsm.Context, err error) error {
	b.log.Error(err)
	return b.final(c, s, "Something went wrong, try again later")
}

// refuse reports a domain error to the user, anything else is a failure.
func (b *Bot) refuse(c telebot.Context, s fsm.Context, err error) error {
	if errors.KindOf(err) == errors.KindUnknown {
		return b.fail(c, s, err)
	}
	return b.final(c, s, capitalize(errors.Reason(err)))
}

func (b *Bot) start(c telebot.Context, s fsm.Context) error {
	sender := c.Sender()
	if sender == nil {
		return b.fail(c, s, errors.Fail("get sender"))
	}

	b.subscribers.add(sender.ID)
	return b.final(c, s, usage)
}

func (b *Bot) mute(c telebot.Context, s fsm.Context) error {
	sender := c.Sender()
	if sender == nil {
		return b.fail(c, s, errors.Fail("get sender"))
	}

	b.subscribers.remove(sender.ID)
	return b.final(c, s, "Reminders are off, /start turns them back on")
}

func (b *Bot) next(c telebot.Context, s fsm.Context) error {
	m, err := b.scheduler.PeekNext(b.clock.Now())
	if errors.IsKind(err, errors.NotFound) {
		return b.final(c, s, "No meetings ahead")
	}
	if err != nil {
		return b.fail(c, s, errors.WrapFail(err, "peek next meeting"))
	}

	return b.final(c, s, "Next: "+describe(m))
}

func (b *Bot) startBook(c telebot.Context, s fsm.Context) error {
	b.setState(s, bookReadTitleState)
	return c.Send("Enter the meeting title")
}

func (b *Bot) bookReadTitle(c telebot.Context, s fsm.Context) error {
	title := strings.TrimSpace(c.Text())
	if title == "" {
		return c.Send("Title must not be empty, enter the meeting title")
	}

	err := s.Update(titleKey, title)
	if err != nil {
		return b.fail(c, s, errors.WrapFail(err, "update state with title"))
	}

	b.setState(s, bookReadSlotState)
	return c.Send("Enter date and time as DD.MM.YYYY HH:MM-HH:MM")
}

func (b *Bot) book(ctx context.Context, c telebot.Context, s fsm.Context) error {
	var title string
	err := s.Get(titleKey, &title)
	if err != nil {
		b.log.Debug(err)
		return b.final(c, s, "Error, start over with /book")
	}

	start, end, err := parseSlot(c.Text(), b.clock.Location())
	if err != nil {
		b.log.Debug(err)
		return c.Send("Bad format, expected DD.MM.YYYY HH:MM-HH:MM")
	}

	m, err := b.scheduler.Book(ctx, title, start, end)
	if err != nil {
		return b.refuse(c, s, errors.WrapFail(err, "book meeting"))
	}

	return b.final(c, s, "Booked: "+describe(m))
}

func (b *Bot) startCancel(c telebot.Context, s fsm.Context) error {
	b.setState(s, cancelReadTitleState)
	return c.Send("Enter the title of the meetings to cancel")
}

func (b *Bot) cancel(ctx context.Context, c telebot.Context, s fsm.Context) error {
	title := strings.TrimSpace(c.Text())

	removed, err := b.scheduler.Cancel(ctx, &title, nil)
	if err != nil {
		return b.refuse(c, s, errors.WrapFail(err, "cancel meeting"))
	}

	return b.final(c, s, fmt.Sprintf("Cancelled %d meeting(s) titled %q", len(removed), title))
}

// parseSlot reads "DD.MM.YYYY HH:MM-HH:MM" in loc.
func parseSlot(text string, loc *time.Location) (time.Time, time.Time, error) {
	left, right, found := strings.Cut(strings.TrimSpace(text), "-")
	if !found {
		return time.Time{}, time.Time{}, errors.Errorf("no end time in %q", text)
	}

	start, err := time.ParseInLocation(slotLayout, strings.TrimSpace(left), loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.WrapFail(err, "parse start")
	}

	clockEnd, err := time.Parse(timeLayout, strings.TrimSpace(right))
	if err != nil {
		return time.Time{}, time.Time{}, errors.WrapFail(err, "parse end")
	}

	end := time.Date(
		start.Year(), start.Month(), start.Day(),
		clockEnd.Hour(), clockEnd.Minute(), 0, 0,
		loc,
	)
	return start, end, nil
}

func describe(m meeting.Meeting) string {
	return fmt.Sprintf(
		"%q on %s, %s-%s",
		m.Title,
		m.Start.Format("Mon 02.01.2006"),
		m.Start.Format(timeLayout),
		m.End.Format(timeLayout),
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
