// Package metrics exposes Prometheus collectors for schema inference.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siegeai/siegeschema/infer"
	"github.com/siegeai/siegeschema/schema"
)

const namespace = "siegeschema"

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeParseError  = "parse_error"
	OutcomeInvalidRoot = "invalid_root"
	OutcomeError       = "error"
)

type Metrics struct {
	Inferences    *prometheus.CounterVec
	Duration      prometheus.Histogram
	DocumentBytes prometheus.Histogram
}

// New creates the collectors and registers them with reg when it is not nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Inferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inferences_total",
			Help:      "Schema inferences by root kind and outcome.",
		}, []string{"root", "outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Time spent parsing and inferring one document.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		DocumentBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_bytes",
			Help:      "Size of documents submitted for inference.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Inferences, m.Duration, m.DocumentBytes)
	}
	return m
}

type instrumented struct {
	next infer.Inferrer
	m    *Metrics
}

// Instrument records every inference made through next.
func Instrument(next infer.Inferrer, m *Metrics) infer.Inferrer {
	return &instrumented{next: next, m: m}
}

func (i *instrumented) InferBytes(b []byte) (schema.Schema, error) {
	start := time.Now()
	s, err := i.next.InferBytes(b)
	i.m.Duration.Observe(time.Since(start).Seconds())
	i.m.DocumentBytes.Observe(float64(len(b)))

	root := "none"
	if s != nil {
		root = s.Kind().String()
	}
	i.m.Inferences.WithLabelValues(root, outcome(err)).Inc()
	return s, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, infer.ErrParse):
		return OutcomeParseError
	case errors.Is(err, schema.ErrInvalidRoot):
		return OutcomeInvalidRoot
	default:
		return OutcomeError
	}
}
