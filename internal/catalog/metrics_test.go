package catalog

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"aisumo/pkg/domain"
)

func TestPrometheusMetricsRecordFetchAndMutations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMetrics(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	backend := newFaultStore()
	preload(backend)
	backend.fail("select:" + domain.TableIssueOptions)
	s := New(backend, WithMetrics(m))
	ctx := context.Background()
	s.FetchAll(ctx)

	if got := testutil.ToFloat64(m.fetches.WithLabelValues(domain.TableTools, OutcomeRows)); got != 1 {
		t.Fatalf("tools rows = %v", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues(domain.TableFilterTabs, OutcomeEmpty)); got != 1 {
		t.Fatalf("filter tabs empty = %v", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues(domain.TableIssueOptions, OutcomeError)); got != 1 {
		t.Fatalf("issue options error = %v", got)
	}

	backend.fail("delete:" + domain.TableTools)
	_ = s.DeleteTool(ctx, "cursor")
	_ = s.UpdateTool(ctx, "cursor", domain.ToolPatch{IsHotDeal: domain.Ptr(true)})
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("delete tool", OutcomeError)); got != 1 {
		t.Fatalf("delete errors = %v", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("update tool", OutcomeOK)); got != 1 {
		t.Fatalf("update ok = %v", got)
	}
	if n := testutil.CollectAndCount(m.fetchDuration); n != len(domain.Tables) {
		t.Fatalf("expected one duration series per table, got %d", n)
	}
}

func TestPrometheusMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetrics(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPrometheusMetrics(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if m, err := NewPrometheusMetrics(nil); err != nil || m == nil {
		t.Fatalf("nil registerer must still build collectors")
	}
}
