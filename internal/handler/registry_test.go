package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

func TestIsKnown(t *testing.T) {
	for _, name := range []string{
		"serve_static_file", "get_data", "post_data",
		"register_user", "login_user", "get_user_profile",
		"metrics", "health",
	} {
		if !IsKnown(name) {
			t.Errorf("IsKnown(%q) = false", name)
		}
	}
	if IsKnown("drop_tables") {
		t.Error("IsKnown accepted an unregistered name")
	}
}

func TestNewUnknownHandler(t *testing.T) {
	if _, err := New("drop_tables", testDeps(t), nil); err == nil {
		t.Error("expected error for unknown handler")
	}
}

func TestNames(t *testing.T) {
	if got := len(Names()); got != len(factories) {
		t.Errorf("Names() returned %d entries, want %d", got, len(factories))
	}
}

func TestMetricsHandler(t *testing.T) {
	deps := testDeps(t)
	deps.Metrics.ObserveRequest("GET", 200, time.Millisecond)

	h := mustHandler(t, "metrics", deps, nil)
	resp, err := h(&httpcore.Request{Method: "GET", Path: "/metrics"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
	if resp.ContentType != metricsContentType {
		t.Errorf("content type = %q", resp.ContentType)
	}
	if !strings.Contains(string(resp.Body), "wirehttp_requests_total") {
		t.Error("exposition missing request counter")
	}
}

func TestMetricsHandlerRequiresRegistry(t *testing.T) {
	deps := testDeps(t)
	deps.Metrics = nil
	if _, err := New("metrics", deps, nil); err == nil {
		t.Error("expected error without metric registry")
	}
}
