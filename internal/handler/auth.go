package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/yndnr/wirehttp-go/internal/core/domain"
	"github.com/yndnr/wirehttp-go/internal/core/service"
	"github.com/yndnr/wirehttp-go/internal/httpcore"
	"github.com/yndnr/wirehttp-go/internal/middleware"
)

// credentials is the JSON body accepted by register_user and login_user.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeCredentials parses the request body. The error response is
// non-nil when the body is unusable.
func decodeCredentials(req *httpcore.Request) (*credentials, *httpcore.Response) {
	if len(req.Body) == 0 {
		return nil, httpcore.Text(400, "request body is empty")
	}
	var creds credentials
	if err := json.Unmarshal(req.Body, &creds); err != nil {
		return nil, httpcore.Text(400, "invalid JSON in request body")
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, errorJSON(400, "username and password are required")
	}
	return &creds, nil
}

func newRegisterUserHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	svc := deps.Auth
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		creds, errResp := decodeCredentials(req)
		if errResp != nil {
			return errResp, nil
		}

		user, err := svc.Register(context.Background(), &service.RegisterRequest{
			Username: creds.Username,
			Password: creds.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUserExists):
				return errorJSON(409, "user '"+creds.Username+"' already exists"), nil
			case domain.IsDomainError(err, domain.ErrInvalidArgument.Code):
				return errorJSON(400, err.Error()), nil
			default:
				deps.Logger.Error("registration failed", "username", creds.Username, "error", err)
				return httpcore.Text(500, "could not register user"), nil
			}
		}

		deps.Logger.Info("user registered", "username", user.Username, "user_id", user.ID)
		return jsonResponse(201, map[string]string{
			"message": "user registered successfully",
			"user_id": user.ID,
		}), nil
	}, nil
}

func newLoginUserHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	svc := deps.Auth
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		creds, errResp := decodeCredentials(req)
		if errResp != nil {
			return errResp, nil
		}

		resp, err := svc.Login(context.Background(), &service.LoginRequest{
			Username: creds.Username,
			Password: creds.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials),
				errors.Is(err, domain.ErrMissingCredentials):
				deps.Logger.Warn("login failed", "username", creds.Username)
				return errorJSON(401, "invalid credentials"), nil
			default:
				deps.Logger.Error("login failed", "username", creds.Username, "error", err)
				return httpcore.Text(500, "could not log in user"), nil
			}
		}

		deps.Logger.Info("user logged in", "username", creds.Username)
		return jsonResponse(200, map[string]any{
			"message":    "login successful",
			"token":      resp.Token,
			"expires_at": resp.ExpiresAt.UTC().Format(time.RFC3339),
		}), nil
	}, nil
}

func newUserProfileHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	svc := deps.Auth
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		identity, ok := middleware.IdentityFrom(req)
		if !ok {
			return httpcore.Text(401, "user data missing"), nil
		}

		user, err := svc.Profile(context.Background(), identity)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return errorJSON(404, "user not found"), nil
			}
			deps.Logger.Error("profile lookup failed", "username", identity.Username, "error", err)
			return httpcore.Text(500, "could not load profile"), nil
		}

		return jsonResponse(200, map[string]any{
			"message":    "user profile data",
			"user_id":    user.ID,
			"username":   user.Username,
			"role":       string(user.Role),
			"created_at": time.UnixMilli(user.CreatedAt).UTC().Format(time.RFC3339),
		}), nil
	}, nil
}
