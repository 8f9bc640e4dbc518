package logger

import (
	"go.uber.org/zap"

	"github.com/nikmy/meetsched/pkg/environment"
	"github.com/nikmy/meetsched/pkg/errors"
)

type Logger interface {
	With(label string) Logger

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Panicf(format string, args ...any)

	Debug(err error)
	Info(err error)
	Warn(err error)
	Error(err error)
	Panic(err error)
}

func New(env environment.Env) (Logger, error) {
	var logger *zap.Logger
	var err error

	switch env {
	case environment.Production:
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, errors.WrapFail(err, "init logger")
	}

	return FromZap(logger), nil
}

func FromZap(base *zap.Logger) Logger {
	return &wrapper{base: base.Sugar()}
}

type wrapper struct {
	base *zap.SugaredLogger
}

func (w *wrapper) With(label string) Logger {
	return &wrapper{w.base.Named(label)}
}

func (w *wrapper) Debug(err error) {
	w.base.Debugf("%s", err)
}

func (w *wrapper) Info(err error) {
	w.base.Infof("%s", err)
}

func (w *wrapper) Warn(err error) {
	w.base.Warnf("%s", err)
}

func (w *wrapper) Error(err error) {
	w.base.Errorf("%s", err)
	_ = w.base.Sync()
}

func (w *wrapper) Panic(err error) {
	_ = w.base.Sync()
	w.base.Panicf("%s", err)
}

func (w *wrapper) Debugf(format string, args ...any) {
	w.base.Debugf(format, args...)
}

func (w *wrapper) Infof(format string, args ...any) {
	w.base.Infof(format, args...)
}

func (w *wrapper) Warnf(format string, args ...any) {
	w.base.Warnf(format, args...)
}

func (w *wrapper) Errorf(format string, args ...any) {
	w.base.Errorf(format, args...)
	_ = w.base.Sync()
}

func (w *wrapper) Panicf(format string, args ...any) {
	_ = w.base.Sync()
	w.base.Panicf(format, args...)
}
