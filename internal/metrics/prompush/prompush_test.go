package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sqlddl/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// readCounterValue reads the current value of a Counter for assertions in tests.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCount reads the sample count of one SummaryVec child.
func readSummaryCount(t *testing.T, v *prometheus.SummaryVec, labels ...string) uint64 {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	return m.GetSummary().GetSampleCount()
}

// TestNewBackend validates construction defaults and errors.
func TestNewBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		jobName     string
		gatewayURL  string
		wantErr     bool
		wantJobName string
	}{
		{name: "missing gateway URL returns error", jobName: "j", gatewayURL: "", wantErr: true},
		{name: "empty job name uses default", gatewayURL: "http://pushgateway:9091", wantJobName: "ddlgen"},
		{name: "explicit job name is preserved", jobName: "migrate", gatewayURL: "http://pushgateway:9091", wantJobName: "migrate"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBackend(tt.jobName, tt.gatewayURL)
			if tt.wantErr {
				if err == nil || b != nil {
					t.Fatalf("NewBackend(%q, %q) = %v, %v; want nil, error", tt.jobName, tt.gatewayURL, b, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBackend(%q, %q) error = %v", tt.jobName, tt.gatewayURL, err)
			}
			if b.jobName != tt.wantJobName {
				t.Fatalf("backend.jobName = %q, want %q", b.jobName, tt.wantJobName)
			}
		})
	}
}

// TestRouting verifies counters and summaries land in the right collectors
// and unknown names are ignored.
func TestRouting(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("j", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter(metrics.StepTotal, 2, metrics.Labels{"step": "render", "status": "success"})
	b.IncCounter(metrics.StatementsTotal, 1, metrics.Labels{"kind": "executed"})
	b.IncCounter("unknown_total", 5, nil)
	b.ObserveHistogram(metrics.StepDuration, 0.2, metrics.Labels{"step": "exec", "status": "failure"})
	b.ObserveHistogram("unknown_seconds", 1, nil)

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("render", "success")); got != 2 {
		t.Fatalf("stepCounter = %v, want 2", got)
	}
	if got := readCounterValue(t, b.statementCounter.WithLabelValues("executed")); got != 1 {
		t.Fatalf("statementCounter = %v, want 1", got)
	}
	if got := readSummaryCount(t, b.stepDuration, "exec", "failure"); got != 1 {
		t.Fatalf("stepDuration count = %d, want 1", got)
	}
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway URL.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method string
		path   string
		body   string
	}
	reqCh := make(chan pushRequestInfo, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushRequestInfo{method: r.Method, path: r.URL.Path, body: string(body)}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("ddl-job", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.StepTotal, 1, metrics.Labels{"step": "render", "status": "success"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}
	if got.method != http.MethodPut {
		t.Fatalf("push method = %q, want PUT", got.method)
	}
	if !strings.Contains(got.path, "ddl-job") {
		t.Fatalf("push path = %q, want job name in path", got.path)
	}
	if got.body == "" {
		t.Fatalf("push body is empty")
	}
}

// BenchmarkIncCounterStep measures the cost of incrementing the step counter
// through the Backend abstraction.
func BenchmarkIncCounterStep(b *testing.B) {
	backend, err := NewBackend("j", "http://example.com")
	if err != nil {
		b.Fatalf("NewBackend() error = %v", err)
	}
	lbls := metrics.Labels{"step": "render", "status": "success"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.IncCounter(metrics.StepTotal, 1, lbls)
	}
}
