package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status: got %d", rr.Code)
	}
	return rr.Body.String()
}

func TestObserveHTTPRequest_Exposed(t *testing.T) {
	m := New()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/overlay", http.StatusOK, 25*time.Millisecond)

	body := scrape(t, m)
	if !strings.Contains(body, "linkmap_http_requests_total") {
		t.Fatalf("missing request counter in scrape:\n%s", body)
	}
	if !strings.Contains(body, `path="/api/v1/overlay"`) {
		t.Fatalf("missing path label in scrape:\n%s", body)
	}
}

func TestObservePreprocessPass_Exposed(t *testing.T) {
	m := New()
	m.ObservePreprocessPass(120 * time.Millisecond)
	m.AddLinksDropped(DropUnresolved, 3)
	m.AddLinksDropped(DropRuleFiltered, 1)

	body := scrape(t, m)
	if !strings.Contains(body, "linkmap_preprocess_passes_total 1") {
		t.Fatalf("missing pass counter in scrape:\n%s", body)
	}
	if !strings.Contains(body, `linkmap_preprocess_links_dropped_total{reason="unresolved"} 3`) {
		t.Fatalf("missing drop counter in scrape:\n%s", body)
	}
}

func TestAddLinksDropped_IgnoresNonPositive(t *testing.T) {
	m := New()
	m.AddLinksDropped(DropUnresolved, 0)
	m.AddLinksDropped(DropUnresolved, -2)

	body := scrape(t, m)
	if strings.Contains(body, `reason="unresolved"`) {
		t.Fatalf("zero and negative counts must not create series:\n%s", body)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObservePreprocessPass(time.Millisecond)
	m.AddLinksDropped(DropUnresolved, 1)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics handler: got %d", rr.Code)
	}
}
