package middleware

import (
	"strings"
	"testing"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

func TestRequestIDAssigned(t *testing.T) {
	var captured string
	h := RequestID()(func(req *httpcore.Request) (*httpcore.Response, error) {
		captured = req.ID
		return &httpcore.Response{Status: 200}, nil
	})

	if _, err := h(&httpcore.Request{}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured == "" {
		t.Fatal("request ID not assigned")
	}
	if len(captured) != 26 {
		t.Errorf("ID length = %d, want 26", len(captured))
	}
	if captured != strings.ToLower(captured) {
		t.Errorf("ID not lowercase: %q", captured)
	}
}

func TestRequestIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	h := RequestID()(func(req *httpcore.Request) (*httpcore.Response, error) {
		seen[req.ID] = true
		return &httpcore.Response{Status: 200}, nil
	})

	for i := 0; i < 100; i++ {
		if _, err := h(&httpcore.Request{}); err != nil {
			t.Fatalf("handler error: %v", err)
		}
	}
	if len(seen) != 100 {
		t.Errorf("got %d unique IDs, want 100", len(seen))
	}
}

func TestRequestIDPreservesExisting(t *testing.T) {
	var captured string
	h := RequestID()(func(req *httpcore.Request) (*httpcore.Response, error) {
		captured = req.ID
		return &httpcore.Response{Status: 200}, nil
	})

	if _, err := h(&httpcore.Request{ID: "preset"}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured != "preset" {
		t.Errorf("ID = %q, want preset", captured)
	}
}
