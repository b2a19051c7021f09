// Package metrics records decode activity.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per decode and one per failed attempt.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveDecode records a finished decode that produced symbols results.
	ObserveDecode(strategy string, symbols int, elapsed time.Duration)
	// ObserveFailure records a contained failure of one decoder attempt.
	ObserveFailure(decoder, category string)
}

// Nop discards every observation.
type Nop struct{}

func (Nop) ObserveDecode(string, int, time.Duration) {}
func (Nop) ObserveFailure(string, string)            {}

// Prometheus exports observations as Prometheus metrics.
type Prometheus struct {
	decodes  *prometheus.CounterVec
	symbols  *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheus registers the decode metrics with reg. A nil reg uses the
// default registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Prometheus{
		decodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxinglight_decodes_total",
				Help: "Total number of decode calls",
			},
			[]string{"binarizer", "status"}, // status: found, empty
		),
		symbols: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxinglight_symbols_total",
				Help: "Total number of symbols decoded",
			},
			[]string{"binarizer"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zxinglight_attempt_failures_total",
				Help: "Total number of failed decoder attempts",
			},
			[]string{"decoder", "category"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zxinglight_decode_duration_seconds",
				Help:    "Decode duration in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"binarizer"},
		),
	}
}

// ObserveDecode implements Recorder.
func (p *Prometheus) ObserveDecode(strategy string, symbols int, elapsed time.Duration) {
	status := "empty"
	if symbols > 0 {
		status = "found"
	}
	p.decodes.WithLabelValues(strategy, status).Inc()
	p.symbols.WithLabelValues(strategy).Add(float64(symbols))
	p.duration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}

// ObserveFailure implements Recorder.
func (p *Prometheus) ObserveFailure(decoder, category string) {
	p.failures.WithLabelValues(decoder, category).Inc()
}
