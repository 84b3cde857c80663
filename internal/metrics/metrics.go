// Package metrics instruments dashboard computations with Prometheus.
//
// The dashboard command is a one-shot process, so instead of serving
// /metrics the collected samples are written in text exposition format to a
// file that node_exporter's textfile collector can pick up.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is what the dashboard service reports to. A nil Recorder is
// replaced by Nop.
type Recorder interface {
	ObserveFetch(source string, d time.Duration, err error)
	ObserveSection(section string, d time.Duration, err error)
	ObserveRequest(view string, d time.Duration, warnings int, err error)
}

// Collector registers its metrics on a private registry so tests and
// repeated runs never collide on the default one.
type Collector struct {
	registry *prometheus.Registry

	FetchDuration   *prometheus.HistogramVec
	FetchErrors     *prometheus.CounterVec
	SectionDuration *prometheus.HistogramVec
	SectionWarnings *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodash_fetch_duration_seconds",
				Help:    "Duration of record fetches from the data gateway",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		FetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodash_fetch_errors_total",
				Help: "Record fetches that failed",
			},
			[]string{"source"},
		),
		SectionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodash_section_duration_seconds",
				Help:    "Duration of individual metric calculators",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"section"},
		),
		SectionWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodash_section_warnings_total",
				Help: "Sections dropped from a result because their calculator failed",
			},
			[]string{"section"},
		),
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodash_requests_total",
				Help: "Dashboard requests by view and outcome",
			},
			[]string{"view", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foodash_request_duration_seconds",
				Help:    "End-to-end duration of dashboard requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"view"},
		),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) ObserveFetch(source string, d time.Duration, err error) {
	c.FetchDuration.WithLabelValues(source).Observe(d.Seconds())
	if err != nil {
		c.FetchErrors.WithLabelValues(source).Inc()
	}
}

func (c *Collector) ObserveSection(section string, d time.Duration, err error) {
	c.SectionDuration.WithLabelValues(section).Observe(d.Seconds())
	if err != nil {
		c.SectionWarnings.WithLabelValues(section).Inc()
	}
}

func (c *Collector) ObserveRequest(view string, d time.Duration, warnings int, err error) {
	c.RequestDuration.WithLabelValues(view).Observe(d.Seconds())
	c.Requests.WithLabelValues(view, outcome(warnings, err)).Inc()
}

func outcome(warnings int, err error) string {
	switch {
	case err != nil:
		return "error"
	case warnings > 0:
		return "partial"
	default:
		return "ok"
	}
}

// WriteTextfile dumps every collected sample to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

type nop struct{}

func (nop) ObserveFetch(string, time.Duration, error)        {}
func (nop) ObserveSection(string, time.Duration, error)      {}
func (nop) ObserveRequest(string, time.Duration, int, error) {}

// Nop discards everything.
var Nop Recorder = nop{}
