package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(reg)

	httpMetrics.Observe("GET", "/api/v1/delivery-options", 200, 50*time.Millisecond)
	httpMetrics.Observe("GET", "/api/v1/delivery-options", 200, 30*time.Millisecond)
	httpMetrics.Observe("GET", "", 500, 10*time.Millisecond)

	requests := gather(t, reg, "http_requests_total")
	if requests == nil {
		t.Fatal("expected http_requests_total family")
	}
	if len(requests.GetMetric()) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(requests.GetMetric()))
	}

	duration := gather(t, reg, "http_request_duration_seconds")
	if duration == nil {
		t.Fatal("expected duration family")
	}
	var total uint64
	for _, metric := range duration.GetMetric() {
		total += metric.GetHistogram().GetSampleCount()
	}
	if total != 3 {
		t.Fatalf("expected 3 observations, got %d", total)
	}
}

func TestHTTPMetricsNormalizesEmptyRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(reg)

	httpMetrics.Observe("GET", "", 200, time.Millisecond)

	requests := gather(t, reg, "http_requests_total")
	labels := requests.GetMetric()[0].GetLabel()
	found := false
	for _, label := range labels {
		if label.GetName() == "route" && label.GetValue() == "unknown" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected route label normalized to unknown, got %v", labels)
	}
}

func TestLookupMetricsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	lookup := NewLookupMetrics(reg)

	lookup.IncOutcome(LookupOutcomeOK)
	lookup.IncOutcome(LookupOutcomeOK)
	lookup.IncOutcome(LookupOutcomeNoResults)
	lookup.ObserveDuration(20 * time.Millisecond)

	outcomes := gather(t, reg, "carrier_lookup_total")
	if outcomes == nil {
		t.Fatal("expected carrier_lookup_total family")
	}
	var total float64
	for _, metric := range outcomes.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	if total != 3 {
		t.Fatalf("expected 3 lookups counted, got %v", total)
	}
}

func TestNilSafeReceivers(t *testing.T) {
	var httpMetrics *HTTPMetrics
	var lookup *LookupMetrics

	httpMetrics.Observe("GET", "/", 200, time.Millisecond)
	lookup.IncOutcome(LookupOutcomeError)
	lookup.ObserveDuration(time.Millisecond)

	unregistered := NewHTTPMetrics(nil)
	unregistered.Observe("GET", "/", 200, time.Millisecond)
}
