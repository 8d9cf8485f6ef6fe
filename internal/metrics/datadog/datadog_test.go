package datadog

import (
	"reflect"
	"testing"

	"sqlddl/internal/metrics"
)

func TestNewBackendRequiresAddr(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{})
	if err == nil || b != nil {
		t.Fatalf("NewBackend(empty) = %v, %v; want nil, error", b, err)
	}
}

func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   metrics.Labels
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty", in: metrics.Labels{}, want: nil},
		{
			name: "sorted",
			in:   metrics.Labels{"step": "exec", "job": "ddlgen", "status": "success"},
			want: []string{"job:ddlgen", "status:success", "step:exec"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := labelsToTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("labelsToTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestBackendUDP verifies a backend can be created against a UDP address and
// accepts calls without an agent listening.
func TestBackendUDP(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{Addr: "127.0.0.1:8125", GlobalTags: []string{"env:test"}})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.StatementsTotal, 1, metrics.Labels{"kind": "executed"})
	b.ObserveHistogram(metrics.StepDuration, 0.01, metrics.Labels{"step": "render"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}
