package telegram

import (
	"context"
	"sync"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/meetsched/pkg/clock"
	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/logger"
)

func New(
	log logger.Logger,
	conf Config,
	scheduler Scheduler,
	clk clock.Clock,
) (*Bot, error) {
	if conf.Token == "" {
		return nil, errors.Error("empty telegram token")
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:   conf.Token,
		Updates: 256,
		Poller: &telebot.LongPoller{
			Timeout: conf.PollInterval,
		},
	})
	if err != nil {
		return nil, errors.WrapFail(err, "create telebot")
	}

	return &Bot{
		bot:         b,
		out:         b,
		scheduler:   scheduler,
		clock:       clk,
		log:         log.With("telegram_bot"),
		subscribers: newSubscribers(),
		reminders:   newReminders(conf.NotifyBefore),
	}, nil
}

type Bot struct {
	bot *telebot.Bot
	out sender

	scheduler Scheduler
	clock     clock.Clock
	log       logger.Logger

	subscribers *subscribers
	reminders   *reminders

	wg sync.WaitGroup
}

func (b *Bot) Run(ctx context.Context) error {
	b.setupHandlers(ctx)

	b.wg.Add(2)
	go func() {
		defer b.wg.Done()
		b.bot.Start()
	}()
	go func() {
		defer b.wg.Done()
		b.watch(ctx)
	}()

	return nil
}

// Stop ends polling and waits for the reminder watcher, which exits
// once the Run context is done.
func (b *Bot) Stop() {
	b.bot.Stop()
	b.wg.Wait()
}

// subscribers are the chats that asked for reminders.
type subscribers struct {
	mu    sync.Mutex
	chats map[int64]struct{}
}

func newSubscribers() *subscribers {
	return &subscribers{chats: make(map[int64]struct{})}
}

func (s *subscribers) add(chat int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chat] = struct{}{}
}

func (s *subscribers) remove(chat int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chat)
}

func (s *subscribers) list() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := make([]int64, 0, len(s.chats))
	for chat := range s.chats {
		chats = append(chats, chat)
	}
	return chats
}
