package main

import (
	"context"
	stdlog "log"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikmy/meetsched/internal/api"
	"github.com/nikmy/meetsched/internal/metrics"
	"github.com/nikmy/meetsched/internal/policy"
	"github.com/nikmy/meetsched/internal/repo"
	"github.com/nikmy/meetsched/internal/scheduler"
	"github.com/nikmy/meetsched/internal/store"
	"github.com/nikmy/meetsched/internal/telegram"
	"github.com/nikmy/meetsched/pkg/clock"
	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := newApp().execute(context.Background())
	if err != nil {
		stdlog.Fatal(err)
	}
}

func serve(ctx context.Context, cfg *Config) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return errors.WrapFail(err, "init logger")
	}

	clk, err := clock.Load(cfg.Timezone)
	if err != nil {
		return errors.WrapFailf(err, "load timezone %q", cfg.Timezone)
	}

	journal, err := repo.New(ctx, cfg.Mongo, log)
	if err != nil {
		return errors.WrapFail(err, "init journal")
	}

	collector, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return errors.WrapFail(err, "init metrics")
	}

	meetings := scheduler.New(
		log,
		store.New(),
		policy.New(cfg.Policy),
		clk,
		journal,
		collector,
	)

	server := api.NewServer(cfg.HTTP, log, meetings, journal, clk, prometheus.DefaultGatherer)

	var bot *telegram.Bot
	if cfg.Telegram.Token != "" {
		bot, err = telegram.New(log, cfg.Telegram, meetings, clk)
		if err != nil {
			return errors.WrapFail(err, "initialize bot service")
		}

		err = bot.Run(ctx)
		if err != nil {
			return errors.WrapFail(err, "run bot")
		}
		log.Infof("bot has been started")
	}

	serveErr := server.Serve(ctx)
	if serveErr != nil {
		log.Error(serveErr)
	}

	log.Infof("graceful shutdown...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if serveErr != nil {
		errs = append(errs, serveErr)
	}

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		errs = append(errs, err)
	}

	if bot != nil {
		bot.Stop()
	}

	err = journal.Close(shutdownCtx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "close journal"))
	}

	log.Infof("shutdown complete")
	return errors.Collapse(errs)
}
