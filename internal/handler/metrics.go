package handler

import (
	"fmt"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

// metricsContentType is the Prometheus text exposition format.
const metricsContentType = "text/plain; version=0.0.4; charset=utf-8"

func newMetricsHandler(deps *Deps, args map[string]any) (httpcore.Handler, error) {
	if deps.Metrics == nil {
		return nil, fmt.Errorf("metrics handler requires a metric registry")
	}
	return func(req *httpcore.Request) (*httpcore.Response, error) {
		body, err := deps.Metrics.Render()
		if err != nil {
			deps.Logger.Error("metrics render failed", "error", err)
			return httpcore.Text(500, "could not gather metrics"), nil
		}
		return &httpcore.Response{
			Status:      200,
			ContentType: metricsContentType,
			Body:        body,
		}, nil
	}, nil
}
