// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics while rendering and applying DDL.
//
// A global, pluggable backend defaults to a no-op implementation, so metrics
// are always safe to call even when no real backend is configured. Concrete
// systems (Prometheus Pushgateway, Datadog) live in subpackages.
package metrics

import (
	"sync"
	"time"
)

// Metric names understood by every backend.
const (
	StepTotal       = "ddl_step_total"
	StepDuration    = "ddl_step_duration_seconds"
	StatementsTotal = "ddl_statements_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
	job             = "ddlgen"
)

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

// SetJob sets the job label attached to every metric. Empty names are ignored.
func SetJob(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	job = name
	mu.Unlock()
}

func current() (Backend, string) {
	mu.RLock()
	defer mu.RUnlock()
	return backend, job
}

// Flush delegates to the current backend.
func Flush() error {
	b, _ := current()
	return b.Flush()
}

// RecordStep records latency and success/failure of one step
// ("render", "exec", "lookup", ...).
func RecordStep(step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	b, j := current()
	lbls := Labels{
		"job":    j,
		"step":   step,
		"status": status,
	}
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordStatement counts one statement outcome. Typical kinds are
// "rendered", "executed" and "failed".
func RecordStatement(kind string) {
	b, j := current()
	b.IncCounter(StatementsTotal, 1, Labels{
		"job":  j,
		"kind": kind,
	})
}
