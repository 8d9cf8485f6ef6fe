// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// Collected metrics are pushed to a Pushgateway when Flush is called instead
// of being exposed on a scrape endpoint; a DDL run is short-lived.
package prompush

import (
	"fmt"

	"sqlddl/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter      *prometheus.CounterVec // ddl_step_total
	stepDuration     *prometheus.SummaryVec // ddl_step_duration_seconds
	statementCounter *prometheus.CounterVec // ddl_statements_total
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name.
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "ddlgen"
	}

	reg := prometheus.NewRegistry()

	// job is the Pushgateway grouping key, so it is not a collector label.
	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metrics.StepTotal,
			Help: "Total number of DDL step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       metrics.StepDuration,
			Help:       "Duration of DDL steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	statementCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metrics.StatementsTotal,
			Help: "Statement outcomes per kind (rendered, executed, failed).",
		},
		[]string{"kind"},
	)

	for name, c := range map[string]prometheus.Collector{
		"step counter":      stepCounter,
		"step summary":      stepDuration,
		"statement counter": statementCounter,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register %s: %w", name, err)
		}
	}

	return &Backend{
		gatewayURL:       gatewayURL,
		jobName:          jobName,
		reg:              reg,
		stepCounter:      stepCounter,
		stepDuration:     stepDuration,
		statementCounter: statementCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case metrics.StepTotal:
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)
	case metrics.StatementsTotal:
		b.statementCounter.WithLabelValues(labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != metrics.StepDuration {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
