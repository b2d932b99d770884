// Package metric provides Prometheus metrics for WireHTTP.
//
// It exposes request, connection, and byte counters in Prometheus text
// format. The server core does not speak net/http, so exposition goes
// through Render instead of promhttp.
package metric

import (
	"bytes"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Registry holds all application metrics backed by a private
// prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	// RequestsTotal counts completed requests by method and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks request handling latency by method.
	RequestDuration *prometheus.HistogramVec

	// ConnectionsActive is the number of currently open connections.
	ConnectionsActive prometheus.Gauge

	// ConnectionsTotal counts connections accepted since start.
	ConnectionsTotal prometheus.Counter

	// BytesRead counts bytes read from clients.
	BytesRead prometheus.Counter

	// BytesWritten counts bytes written to clients.
	BytesWritten prometheus.Counter
}

// NewRegistry creates a Registry with all metrics registered, plus the
// standard Go runtime collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wirehttp_requests_total",
			Help: "Completed requests by method and status code.",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wirehttp_request_duration_seconds",
			Help:    "Request handling latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wirehttp_connections_active",
			Help: "Currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_connections_total",
			Help: "Client connections accepted since start.",
		}),
		BytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_bytes_read_total",
			Help: "Bytes read from clients.",
		}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wirehttp_bytes_written_total",
			Help: "Bytes written to clients.",
		}),
	}

	reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.BytesRead,
		r.BytesWritten,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a closed connection.
func (r *Registry) ConnClosed() {
	r.ConnectionsActive.Dec()
}

// ObserveRequest records a completed request.
func (r *Registry) ObserveRequest(method string, status int, d time.Duration) {
	r.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// AddBytesRead records bytes read from a client.
func (r *Registry) AddBytesRead(n int) {
	r.BytesRead.Add(float64(n))
}

// AddBytesWritten records bytes written to a client.
func (r *Registry) AddBytesWritten(n int) {
	r.BytesWritten.Add(float64(n))
}

// Render gathers all metrics and encodes them in Prometheus text format.
func (r *Registry) Render() ([]byte, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
