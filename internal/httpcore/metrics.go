package httpcore

import "time"

// Metrics receives engine-level observations. The telemetry package
// provides the Prometheus-backed implementation; a nil Metrics on the
// server config disables collection.
type Metrics interface {
	ConnOpened()
	ConnClosed()
	ObserveRequest(method string, status int, d time.Duration)
	AddBytesRead(n int)
	AddBytesWritten(n int)
}
