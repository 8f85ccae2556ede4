package gateway

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gateway calls per client and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors on reg. Registering twice on the
// same registry reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hrms",
		Subsystem: "gateway",
		Name:      "requests_total",
		Help:      "Requests dispatched by the gateway, by client and outcome.",
	}, []string{"client", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hrms",
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Time from dispatch to classification.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"client"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &Metrics{requests: requests, duration: duration}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Step returns the response step that records each result.
func (m *Metrics) Step() ResponseStep {
	return func(res *Result) {
		m.requests.WithLabelValues(res.Client, res.Kind().String()).Inc()
		m.duration.WithLabelValues(res.Client).Observe(res.Duration.Seconds())
	}
}
