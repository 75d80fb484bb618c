package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ReadersCounted.WithLabelValues(ReaderKind(true)).Inc()
	m.ReadersCounted.WithLabelValues(ReaderKind(false)).Add(2)
	m.TransactionRetries.Inc()

	if got := testutil.ToFloat64(m.ReadersCounted.WithLabelValues("guest")); got != 2 {
		t.Errorf("guest readers = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TransactionRetries); got != 1 {
		t.Errorf("retries = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) < 2 {
		t.Errorf("Expected gathered families, got %d", len(families))
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same instance")
	}
}
