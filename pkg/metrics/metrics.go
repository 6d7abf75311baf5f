// Package metrics records validation runs as Prometheus metrics and writes
// them in the node-exporter textfile format for CI collectors.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/githubnext/pkgvet/pkg/logger"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricsLog = logger.New("metrics:metrics")

const namespace = "pkgvet"

// Recorder owns a private registry so concurrent CLI runs and tests never
// share collectors.
type Recorder struct {
	registry *prometheus.Registry

	ruleOutcomes  *prometheus.CounterVec
	ruleDuration  *prometheus.HistogramVec
	suiteRuns     *prometheus.CounterVec
	suiteDuration *prometheus.HistogramVec
	setupFailures prometheus.Counter
}

// NewRecorder returns a recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ruleOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "outcomes_total",
				Help:      "Rule outcomes by rule kind and final state",
			},
			[]string{"rule", "state"},
		),
		ruleDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "rule",
				Name:      "duration_seconds",
				Help:      "Time spent running a single rule",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"rule"},
		),
		suiteRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "suite",
				Name:      "runs_total",
				Help:      "Suite runs by validation mode and terminal state",
			},
			[]string{"mode", "state"},
		),
		suiteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "suite",
				Name:      "duration_seconds",
				Help:      "Time spent running a whole suite",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"mode"},
		),
		setupFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "suite",
				Name:      "setup_failures_total",
				Help:      "Runs aborted before any rule executed",
			},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRule records one finished rule. It matches Suite.OnRuleCompleted.
func (r *Recorder) ObserveRule(o *validation.Outcome) {
	r.ruleOutcomes.WithLabelValues(string(o.Kind), string(o.State)).Inc()
	r.ruleDuration.WithLabelValues(string(o.Kind)).Observe(o.Elapsed().Seconds())
}

// ObserveSuite records one finished run. It matches Suite.OnSuiteCompleted.
func (r *Recorder) ObserveSuite(res *validation.Result) {
	r.suiteRuns.WithLabelValues(string(res.Mode), string(res.State)).Inc()
	r.suiteDuration.WithLabelValues(string(res.Mode)).Observe(res.Elapsed().Seconds())
}

// ObserveSetupFailure records a run that never started.
func (r *Recorder) ObserveSetupFailure() {
	r.setupFailures.Inc()
}

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	metricsLog.Printf("Wrote metrics to %s", path)
	return nil
}
