package dispatch

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JaimeStill/million/pkg/result"
)

// LogObserver logs each dispatched request. Failures log at warn level
// with the rendered message.
func LogObserver(logger *slog.Logger) Observer {
	logger = logger.With("system", "dispatch")
	return func(ctx context.Context, name string, elapsed time.Duration, outcome result.Outcome) {
		status := result.StatusCode(outcome)
		if outcome.Succeeded() {
			logger.DebugContext(ctx, "request handled", "request", name, "status", status, "duration", elapsed)
			return
		}
		logger.WarnContext(
			ctx,
			"request failed",
			"request", name,
			"status", status,
			"error", result.Message(outcome),
			"duration", elapsed,
		)
	}
}

// Metrics records dispatch counts and latency per request type.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the dispatch collectors and registers them with reg.
// Collectors already present in reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_requests_total",
			Help: "Dispatched requests by request type and derived status code",
		}, []string{"request", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_request_duration_seconds",
			Help:    "Handler chain latency by request type",
			Buckets: prometheus.DefBuckets,
		}, []string{"request"}),
	}

	requests, err := register(reg, m.requests)
	if err != nil {
		return nil, err
	}
	m.requests = requests

	duration, err := register(reg, m.duration)
	if err != nil {
		return nil, err
	}
	m.duration = duration

	return m, nil
}

// Observer returns an Observer that feeds m.
func (m *Metrics) Observer() Observer {
	return func(_ context.Context, name string, elapsed time.Duration, outcome result.Outcome) {
		m.requests.WithLabelValues(name, strconv.Itoa(result.StatusCode(outcome))).Inc()
		m.duration.WithLabelValues(name).Observe(elapsed.Seconds())
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
