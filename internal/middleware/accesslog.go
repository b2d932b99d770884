package middleware

import (
	"log/slog"
	"time"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

// AccessLog returns a middleware that writes one structured log entry
// per request. The level tracks the status class: 5xx at error, 4xx at
// warn, everything else at info.
func AccessLog(logger *slog.Logger) httpcore.Middleware {
	return func(next httpcore.Handler) httpcore.Handler {
		return func(req *httpcore.Request) (*httpcore.Response, error) {
			start := time.Now()
			resp, err := next(req)
			elapsed := time.Since(start)

			attrs := []any{
				"method", req.Method,
				"path", req.Path,
				"remote", req.RemoteAddr,
				"request_id", req.ID,
				"duration_ms", elapsed.Milliseconds(),
			}

			if err != nil {
				logger.Error("request failed", append(attrs, "error", err)...)
				return resp, err
			}

			status := 0
			if resp != nil {
				status = resp.Status
			}
			attrs = append(attrs, "status", status)

			switch {
			case status >= 500:
				logger.Error("request", attrs...)
			case status >= 400:
				logger.Warn("request", attrs...)
			default:
				logger.Info("request", attrs...)
			}
			return resp, nil
		}
	}
}
