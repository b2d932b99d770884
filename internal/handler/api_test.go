package handler

import (
	"testing"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

func TestGetDataHandler(t *testing.T) {
	h := mustHandler(t, "get_data", testDeps(t), nil)

	req := &httpcore.Request{Method: "GET", Path: "/api/data"}
	req.Principal = &domain.Identity{UserID: "whus-1", Username: "alice", Role: domain.RoleUser}

	resp, err := h(req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
	if resp.ContentType != "application/json" {
		t.Errorf("content type = %q", resp.ContentType)
	}

	body := jsonBody(t, resp)
	if body["method"] != "GET" || body["path"] != "/api/data" {
		t.Errorf("body = %v", body)
	}
	user, _ := body["authenticated_user"].(map[string]any)
	if user["username"] != "alice" {
		t.Errorf("authenticated_user = %v", user)
	}
}

func TestPostDataHandler(t *testing.T) {
	h := mustHandler(t, "post_data", testDeps(t), nil)

	req := &httpcore.Request{
		Method: "POST",
		Path:   "/api/data",
		Body:   []byte(`{"sensor": "temp", "value": 21.5}`),
	}
	req.Principal = &domain.Identity{Username: "alice"}

	resp, err := h(req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d\n%s", resp.Status, resp.Body)
	}
	body := jsonBody(t, resp)
	if body["status"] != "success" || body["received_by_user"] != "alice" {
		t.Errorf("body = %v", body)
	}
	data, _ := body["data"].(map[string]any)
	if data["sensor"] != "temp" {
		t.Errorf("data = %v", data)
	}
}

func TestPostDataHandlerRejectsBadBodies(t *testing.T) {
	h := mustHandler(t, "post_data", testDeps(t), nil)

	tests := []struct {
		name string
		body []byte
	}{
		{"empty body", nil},
		{"invalid JSON", []byte("{oops")},
		{"invalid UTF-8", []byte{0xff, 0xfe, 0xfd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h(&httpcore.Request{Method: "POST", Path: "/api/data", Body: tt.body})
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if resp.Status != 400 {
				t.Errorf("status = %d, want 400", resp.Status)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	h := mustHandler(t, "health", testDeps(t), nil)

	resp, err := h(&httpcore.Request{Method: "GET", Path: "/healthz"})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("status = %d", resp.Status)
	}
	if got := jsonBody(t, resp)["status"]; got != "ok" {
		t.Errorf("status field = %v", got)
	}
}
