package handler

import (
	"encoding/json"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

// jsonResponse marshals v into an application/json response.
func jsonResponse(status int, v any) *httpcore.Response {
	body, err := json.Marshal(v)
	if err != nil {
		return httpcore.Text(500, "JSON encoding failed")
	}
	return &httpcore.Response{
		Status:      status,
		ContentType: "application/json",
		Body:        body,
	}
}

// errorJSON builds the {"error": ...} envelope used by API handlers.
func errorJSON(status int, msg string) *httpcore.Response {
	return jsonResponse(status, map[string]string{"error": msg})
}
