package httpcore

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"time"
)

// serveConn drives one connection through the request/response cycle:
// frame a request out of the buffer, resolve the route, run the wrapped
// handler, write the response, loop for the next pipelined or persistent
// request. Every exit path releases the socket exactly once via the
// deferred Close.
func (s *Server) serveConn(nc net.Conn) {
	defer nc.Close()

	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ConnOpened()
		defer s.cfg.Metrics.ConnClosed()
	}

	remote := nc.RemoteAddr().String()
	log := s.cfg.Logger.With("remote", remote)
	log.Debug("connection accepted")

	buf := make([]byte, 0, s.cfg.ReadChunkSize)
	chunk := make([]byte, s.cfg.ReadChunkSize)

	for {
		req, consumed, err := Parse(buf)
		if err != nil {
			var fe *FramingError
			if errors.As(err, &fe) {
				log.Warn("malformed request", "reason", fe.Reason)
				s.writeResponse(nc, "", Text(400, fe.Reason), time.Time{})
				return
			}
			log.Error("unexpected parse failure", "error", err)
			s.writeResponse(nc, "", Text(500, ""), time.Time{})
			return
		}

		if req == nil {
			// Need more data. Block on a read with the idle deadline; a
			// zero-byte read means orderly client closure.
			if err := nc.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
			n, err := nc.Read(chunk)
			if n > 0 {
				buf = append(buf, chunk[:n]...)
				if s.cfg.Metrics != nil {
					s.cfg.Metrics.AddBytesRead(n)
				}
				if len(buf) > s.cfg.MaxBufferSize {
					log.Warn("receive buffer over limit", "buffered", len(buf), "limit", s.cfg.MaxBufferSize)
					s.writeResponse(nc, "", Text(413, "request or buffered data exceeds limit"), time.Time{})
					return
				}
			}
			if err != nil {
				s.logReadEnd(log, err)
				return
			}
			continue
		}

		// Slide the buffer past the framed request. Remaining bytes belong
		// to a pipelined next request and stay in place.
		n := copy(buf, buf[consumed:])
		buf = buf[:n]

		req.RemoteAddr = remote
		start := time.Now()

		entry, ok := s.router.Resolve(req.Method, req.Path)
		if !ok {
			log.Info("no route", "method", req.Method, "path", req.Path)
			s.writeResponse(nc, req.Method, Text(404, "path not found"), start)
			return
		}

		resp := s.dispatch(entry, req)

		if err := s.writeResponse(nc, req.Method, resp, start); err != nil {
			// Send failure: nothing more can reach this client.
			log.Debug("response write failed", "error", err)
			return
		}

		if !resp.KeepAlive() {
			return
		}
	}
}

// dispatch builds the effective handler for one request and runs it. The
// auth wrapper is applied innermost, only for routes that require it; the
// registered middleware list folds around that in registration order,
// first registered outermost. A handler error or panic becomes a 500; the
// caller then closes the connection because handler state after a failure
// is not trusted.
func (s *Server) dispatch(entry *RouteEntry, req *Request) (resp *Response) {
	h := entry.Handler
	if entry.RequiresAuth && s.auth != nil {
		h = s.auth(h)
	}
	h = Chain(h, s.middlewares...)

	defer func() {
		if r := recover(); r != nil {
			s.cfg.Logger.Error("handler panic", "method", req.Method, "path", req.Path, "panic", r)
			resp = Text(500, "handler error")
		}
	}()

	out, err := h(req)
	if err != nil {
		s.cfg.Logger.Error("handler failed", "method", req.Method, "path", req.Path, "error", err)
		return Text(500, "handler error")
	}
	if out == nil {
		s.cfg.Logger.Error("handler returned no response", "method", req.Method, "path", req.Path)
		return Text(500, "handler error")
	}
	return out
}

// writeResponse serializes and sends a response in one write call.
func (s *Server) writeResponse(nc net.Conn, method string, resp *Response, start time.Time) error {
	if err := nc.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return err
	}
	n, err := nc.Write(resp.Encode())
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.AddBytesWritten(n)
		if method != "" && !start.IsZero() {
			s.cfg.Metrics.ObserveRequest(method, resp.Status, time.Since(start))
		}
	}
	return err
}

func (s *Server) logReadEnd(log *slog.Logger, err error) {
	switch {
	case errors.Is(err, io.EOF):
		log.Debug("client disconnected")
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			log.Debug("connection idle timeout")
			return
		}
		log.Debug("read failed", "error", err)
	}
}
