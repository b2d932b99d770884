package handler

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/internal/middleware"
)

func newGetDataHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		user := map[string]any{}
		if identity, ok := middleware.IdentityFrom(req); ok {
			user["user_id"] = identity.UserID
			user["username"] = identity.Username
			user["role"] = string(identity.Role)
		}

		return jsonResponse(200, map[string]any{
			"message":            "hello from protected API",
			"method":             req.Method,
			"path":               req.Path,
			"authenticated_user": user,
		}), nil
	}, nil
}

func newPostDataHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		if len(req.Body) == 0 {
			return httpcore.Text(400, "no data received in request body"), nil
		}
		if !utf8.Valid(req.Body) {
			return httpcore.Text(400, "could not decode request body"), nil
		}

		var received any
		if err := json.Unmarshal(req.Body, &received); err != nil {
			return httpcore.Text(400, "invalid JSON in request body"), nil
		}

		receivedBy := ""
		if identity, ok := middleware.IdentityFrom(req); ok {
			receivedBy = identity.Username
		}

		return jsonResponse(200, map[string]any{
			"status":           "success",
			"received_by_user": receivedBy,
			"data":             received,
		}), nil
	}, nil
}

func newHealthHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		return jsonResponse(200, map[string]string{"status": "ok"}), nil
	}, nil
}
