package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikmy/meetsched/internal/ics"
	"github.com/nikmy/meetsched/internal/meeting"
	"github.com/nikmy/meetsched/internal/repo"
	"github.com/nikmy/meetsched/pkg/clock"
	"github.com/nikmy/meetsched/pkg/errors"
	"github.com/nikmy/meetsched/pkg/logger"
)

func NewServer(
	cfg Config,
	log logger.Logger,
	scheduler Scheduler,
	history History,
	clk clock.Clock,
	gatherer prometheus.Gatherer,
) Server {
	return newServer(cfg, log, scheduler, history, clk, gatherer)
}

func newServer(
	cfg Config,
	log logger.Logger,
	scheduler Scheduler,
	history History,
	clk clock.Clock,
	gatherer prometheus.Gatherer,
) *server {
	serveLog := log.With("http_api")

	fiberCfg := fiber.Config{
		ReadTimeout:             cfg.HTTP.ReadTimeout,
		WriteTimeout:            cfg.HTTP.WriteTimeout,
		IdleTimeout:             cfg.HTTP.IdleTimeout,
		DisableStartupMessage:   true,
		EnableTrustedProxyCheck: len(cfg.Proxy.Trusted) != 0,
		ProxyHeader:             cfg.Proxy.Header,
		TrustedProxies:          cfg.Proxy.Trusted,
		RequestMethods: []string{
			fiber.MethodGet,
			fiber.MethodHead,
			fiber.MethodPost,
			fiber.MethodDelete,
		},
	}

	fiberCfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(errorBody(fe.Message))
		}

		serveLog.Warn(errors.WrapFail(err, "handle http request"))
		return c.Status(http.StatusInternalServerError).JSON(errorBody("internal error"))
	}

	s := &server{
		scheduler: scheduler,
		history:   history,
		clock:     clk,
		http:      fiber.New(fiberCfg),
		addr:      cfg.HTTP.Addr,
		log:       serveLog,
	}

	s.setupRoutes()
	if cfg.Metrics {
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		s.http.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return s
}

type server struct {
	scheduler Scheduler
	history   History
	clock     clock.Clock

	http *fiber.App
	addr string
	log  logger.Logger
}

func (s *server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.http.Listen(s.addr) }()

	s.log.Infof("listening on %s", s.addr)

	select {
	case err := <-errCh:
		return errors.WrapFail(err, "listen")
	case <-ctx.Done():
		return nil
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return errors.WrapFail(s.http.ShutdownWithContext(ctx), "shutdown http server")
}

func (s *server) setupRoutes() {
	meetings := s.http.Group("/meetings")
	meetings.Post("/setMeeting", s.handleSetMeeting)
	meetings.Delete("/removeMeeting", s.handleRemoveMeeting)
	meetings.Get("/nextMeeting", s.handleNextMeeting)
	meetings.Get("/calendar.ics", s.handleCalendar)
	meetings.Get("/history", s.handleHistory)
}

type setMeetingRequest struct {
	Title    string `json:"meetingTitle"`
	FromTime string `json:"fromTime"`
	ToTime   string `json:"toTime"`
}

func (s *server) handleSetMeeting(c *fiber.Ctx) error {
	var req setMeetingRequest
	err := c.BodyParser(&req)
	if err != nil {
		s.log.Warn(errors.WrapFail(err, "unmarshal meeting payload"))
		return s.sendError(c, http.StatusBadRequest, "bad json")
	}

	from, err := s.epochToTime("fromTime", req.FromTime)
	if err != nil {
		return s.sendError(c, http.StatusBadRequest, err.Error())
	}

	to, err := s.epochToTime("toTime", req.ToTime)
	if err != nil {
		return s.sendError(c, http.StatusBadRequest, err.Error())
	}

	m, err := s.scheduler.Book(c.UserContext(), req.Title, from, to)
	if err != nil {
		return s.sendKindError(c, errors.WrapFail(err, "book meeting"))
	}

	return c.Status(http.StatusOK).JSON(m)
}

func (s *server) handleRemoveMeeting(c *fiber.Ctx) error {
	var (
		title *string
		start *time.Time
	)

	if raw := c.Query("meetingTitle"); raw != "" {
		title = &raw
	}

	if raw := c.Query("fromTime"); raw != "" {
		from, err := s.epochToTime("fromTime", raw)
		if err != nil {
			return s.sendError(c, http.StatusBadRequest, err.Error())
		}
		start = &from
	}

	removed, err := s.scheduler.Cancel(c.UserContext(), title, start)
	if err != nil {
		return s.sendKindError(c, errors.WrapFail(err, "remove meeting"))
	}

	if removed == nil {
		removed = []meeting.Meeting{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"removed": removed})
}

func (s *server) handleNextMeeting(c *fiber.Ctx) error {
	m, err := s.scheduler.PeekNext(s.clock.Now())
	if err != nil {
		return s.sendKindError(c, err)
	}

	return c.Status(http.StatusOK).JSON(m)
}

func (s *server) handleCalendar(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	return c.Status(http.StatusOK).SendString(ics.Export(s.scheduler.List(), s.clock.Now()))
}

func (s *server) handleHistory(c *fiber.Ctx) error {
	var filters []repo.Filter
	if title := c.Query("meetingTitle"); title != "" {
		filters = append(filters, repo.ByTitle(title))
	}

	if raw := c.Query("since"); raw != "" {
		since, err := s.epochToTime("since", raw)
		if err != nil {
			return s.sendError(c, http.StatusBadRequest, err.Error())
		}
		filters = append(filters, repo.Since(since))
	}

	events, err := s.history.History(c.UserContext(), filters...)
	if err != nil {
		return errors.WrapFail(err, "read journal")
	}

	if events == nil {
		events = []repo.Event{}
	}
	return c.Status(http.StatusOK).JSON(events)
}

// sendKindError answers with the status matching the error kind,
// unknown failures go to the error handler.
func (s *server) sendKindError(c *fiber.Ctx, err error) error {
	status, ok := statusOf(errors.KindOf(err))
	if !ok {
		return err
	}

	s.log.Debugf("%s %s: %v", c.Method(), c.Path(), err)
	return s.sendError(c, status, errors.Reason(err))
}

func statusOf(kind errors.Kind) (int, bool) {
	switch kind {
	case errors.InvalidRange, errors.InvalidArgument:
		return http.StatusBadRequest, true
	case errors.Conflict:
		return http.StatusConflict, true
	case errors.NotFound:
		return http.StatusNotFound, true
	default:
		return 0, false
	}
}

func (s *server) sendError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"status": "ERROR", "message": msg}
}

// epochToTime reads unix seconds in the configured zone.
func (s *server) epochToTime(param, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.Errorf("got empty %q param", param)
	}

	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, errors.Errorf("got malformed %q %s", param, raw)
	}

	return clock.FromEpoch(s.clock, sec), nil
}
