package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNilMetricsSafe verifies that a nil *Metrics can be used without checks at call sites.
func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveImport("paste", "accepted")
	m.ObserveStorageWrite(errors.New("full"))
	m.ObserveRequest("GET", 200, time.Millisecond)
}

// TestCounters verifies label values recorded by each observer.
func TestCounters(t *testing.T) {
	m := New()
	m.ObserveImport("file", "accepted")
	m.ObserveImport("file", "accepted")
	m.ObserveImport("paste", "InvalidSchema")
	m.ObserveStorageWrite(nil)
	m.ObserveStorageWrite(errors.New("full"))
	m.ObserveRequest("PUT", 422, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.imports.WithLabelValues("file", "accepted")); got != 2 {
		t.Errorf("imports{file,accepted} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.imports.WithLabelValues("paste", "InvalidSchema")); got != 1 {
		t.Errorf("imports{paste,InvalidSchema} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.storageWrites.WithLabelValues("error")); got != 1 {
		t.Errorf("storage_writes{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("PUT", "422")); got != 1 {
		t.Errorf("requests{PUT,422} = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("duration collectors = %d, want 1", n)
	}
}
