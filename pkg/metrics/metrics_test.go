package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewManagerDefaults(t *testing.T) {
	m := NewManager()
	if m.namespace != "talentmap" {
		t.Errorf("namespace = %q, want talentmap", m.namespace)
	}
	if m.Registry() == nil {
		t.Fatal("Registry() = nil")
	}
}

func TestFetchMetrics(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	m.OnFetchComplete(ctx, "api", 7, 20*time.Millisecond, nil)
	m.OnFetchComplete(ctx, "api", 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(m.fetches.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues("error")); got != 1 {
		t.Errorf("error fetches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.snapshotEntries); got != 7 {
		t.Errorf("entries gauge = %v, want 7 (failed fetch must not reset it)", got)
	}
}

func TestLayoutCategoryLabelBounded(t *testing.T) {
	m := NewManager(WithCategories("Design", "Technique"))
	ctx := context.Background()

	m.OnLayoutComplete(ctx, "all", time.Millisecond)
	m.OnLayoutComplete(ctx, "Design", time.Millisecond)
	for i := range 200 {
		m.OnLayoutComplete(ctx, fmt.Sprintf("junk%d", i), time.Millisecond)
	}

	if n := testutil.CollectAndCount(m.layouts); n != 3 {
		t.Errorf("layout series = %d, want 3 (all, Design, other)", n)
	}
	if got := testutil.ToFloat64(m.layouts.WithLabelValues("other")); got != 200 {
		t.Errorf("other layouts = %v, want 200", got)
	}
	if got := testutil.ToFloat64(m.layouts.WithLabelValues("Design")); got != 1 {
		t.Errorf("Design layouts = %v, want 1", got)
	}
}

func TestLayoutCategoryDefaultsToPalette(t *testing.T) {
	m := NewManager()
	if got := m.categoryLabel("Technique"); got != "Technique" {
		t.Errorf("categoryLabel(Technique) = %q", got)
	}
	if got := m.categoryLabel("Marketing"); got != "other" {
		t.Errorf("categoryLabel(Marketing) = %q, want other", got)
	}
}

func TestRenderMetrics(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	m.OnRenderComplete(ctx, []string{"svg", "json"}, time.Millisecond, nil)
	m.OnRenderComplete(ctx, []string{"pdf"}, time.Millisecond, errors.New("no rsvg"))

	tests := []struct {
		format, outcome string
		want            float64
	}{
		{"svg", "ok", 1},
		{"json", "ok", 1},
		{"pdf", "error", 1},
		{"pdf", "ok", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.renders.WithLabelValues(tt.format, tt.outcome))
		if got != tt.want {
			t.Errorf("renders{%s,%s} = %v, want %v", tt.format, tt.outcome, got, tt.want)
		}
	}
}

func TestCacheMetrics(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	m.OnCacheHit(ctx, "snapshot")
	m.OnCacheHit(ctx, "snapshot")
	m.OnCacheMiss(ctx, "artifact")
	m.OnCacheSet(ctx, "artifact", 512)

	if got := testutil.ToFloat64(m.cacheHits.WithLabelValues("snapshot")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.cacheMisses.WithLabelValues("artifact")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheBytes.WithLabelValues("artifact")); got != 512 {
		t.Errorf("bytes = %v, want 512", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewManager(WithNamespace("tm"))
	m.ObserveRequest("GET", "/map.svg", 200, 5*time.Millisecond)
	m.OnResponse(context.Background(), "GET", "localhost:8000", "/api/talent-map", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`tm_http_requests_total{code="200",method="GET",route="/map.svg"} 1`,
		`tm_api_client_responses_total{code="200",host="localhost:8000"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestWithHistogramBucketsIgnoresEmpty(t *testing.T) {
	m := NewManager(WithHistogramBuckets(nil))
	if len(m.buckets) == 0 {
		t.Error("empty bucket option should keep defaults")
	}
}
