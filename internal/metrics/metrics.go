// Package metrics exports booking counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikmy/meetsched/pkg/errors"
)

const namespace = "meetsched"

type Collector struct {
	booked    prometheus.Counter
	rejected  *prometheus.CounterVec
	cancelled prometheus.Counter
	scheduled prometheus.Gauge
	latency   *prometheus.HistogramVec
}

// New registers the booking collectors in reg, prometheus.DefaultRegisterer
// if reg is nil. Collectors already registered by an earlier call are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		booked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_booked_total",
			Help:      "Meetings accepted into the calendar.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_rejected_total",
			Help:      "Booking attempts refused, by error kind.",
		}, []string{"kind"}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_cancelled_total",
			Help:      "Meetings removed from the calendar.",
		}),
		scheduled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "meetings_scheduled",
			Help:      "Meetings currently held in the calendar.",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of calendar operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	var err error
	if c.booked, err = register(reg, c.booked); err != nil {
		return nil, err
	}
	if c.rejected, err = register(reg, c.rejected); err != nil {
		return nil, err
	}
	if c.cancelled, err = register(reg, c.cancelled); err != nil {
		return nil, err
	}
	if c.scheduled, err = register(reg, c.scheduled); err != nil {
		return nil, err
	}
	if c.latency, err = register(reg, c.latency); err != nil {
		return nil, err
	}

	return c, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, errors.WrapFail(err, "register collector")
}

func (c *Collector) Booked() {
	if c == nil {
		return
	}
	c.booked.Inc()
	c.scheduled.Inc()
}

func (c *Collector) Rejected(kind errors.Kind) {
	if c == nil {
		return
	}
	c.rejected.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Cancelled(n int) {
	if c == nil || n == 0 {
		return
	}
	c.cancelled.Add(float64(n))
	c.scheduled.Sub(float64(n))
}

func (c *Collector) Observe(operation string, took time.Duration) {
	if c == nil {
		return
	}
	c.latency.WithLabelValues(operation).Observe(took.Seconds())
}
