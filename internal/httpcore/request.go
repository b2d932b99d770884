package httpcore

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// headerSep terminates the header block of a request.
const headerSep = "\r\n\r\n"

// knownMethods is the fixed set of methods the framer accepts. Anything
// else on the request line is a framing error, not a 405.
var knownMethods = map[string]struct{}{
	"GET":     {},
	"POST":    {},
	"PUT":     {},
	"DELETE":  {},
	"HEAD":    {},
	"OPTIONS": {},
	"PATCH":   {},
}

// FramingError reports a malformed request that cannot be parsed out of
// the connection buffer. The connection handler turns it into a 400 and
// closes the connection.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string {
	return "framing: " + e.Reason
}

func framingErrorf(format string, args ...any) *FramingError {
	return &FramingError{Reason: fmt.Sprintf(format, args...)}
}

// Headers holds request header fields. Names are kept exactly as received
// (case-sensitive); a repeated name keeps the last value seen.
type Headers map[string]string

// Get returns the value for an exact header name, or "".
func (h Headers) Get(name string) string {
	return h[name]
}

// Lookup scans for a header by case-insensitive name. It is used for the
// few fields the protocol requires case-insensitive treatment of, such as
// Content-Length and Authorization.
func (h Headers) Lookup(name string) (string, bool) {
	if v, ok := h[name]; ok {
		return v, true
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// QueryParams maps a query key to its values in arrival order. A key that
// appears once has a single-element slice; a key without '=' maps to one
// empty string.
type QueryParams map[string][]string

// Get returns the first value for key, or "".
func (q QueryParams) Get(key string) string {
	if vs := q[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Values returns all values for key in arrival order.
func (q QueryParams) Values(key string) []string {
	return q[key]
}

// Request is one framed HTTP/1.1 request. All fields except Principal are
// set by the framer and treated as immutable afterwards.
type Request struct {
	Method  string // upper-cased, member of the known method set
	Path    string // percent-decoded, query-stripped, starts with "/"
	Proto   string // always "HTTP/1.1"
	Headers Headers
	Body    []byte
	Query   QueryParams

	// ID is a per-request identifier attached by middleware.
	ID string

	// RemoteAddr is the peer address, attached by the connection handler.
	RemoteAddr string

	// Principal is nil until auth middleware populates it with an
	// authenticated identity. It is the only channel by which middleware
	// communicates identity to a handler.
	Principal any
}

// Text returns the body decoded as UTF-8 text. A body that is not valid
// UTF-8 yields ok=false; that is not an error, binary bodies stay
// available through Body.
func (r *Request) Text() (string, bool) {
	if len(r.Body) == 0 {
		return "", true
	}
	if !utf8.Valid(r.Body) {
		return "", false
	}
	return string(r.Body), true
}

// ContentLength reads the Content-Length header case-insensitively.
// Absence means a zero-length body.
func (h Headers) ContentLength() (int, error) {
	v, ok := h.Lookup("Content-Length")
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, framingErrorf("invalid Content-Length %q", v)
	}
	if n < 0 {
		return 0, framingErrorf("negative Content-Length %d", n)
	}
	return n, nil
}

// Parse attempts to frame one request out of buf.
//
// It returns (req, consumed, nil) when a complete request is buffered,
// (nil, 0, nil) when more data is needed, and (nil, 0, *FramingError) when
// the buffered bytes cannot be a valid request. Parse never consumes bytes
// partially: calling it repeatedly on a growing buffer is safe until it
// either frames a request or fails.
func Parse(buf []byte) (*Request, int, error) {
	end := bytes.Index(buf, []byte(headerSep))
	if end < 0 {
		return nil, 0, nil
	}
	headerEnd := end + len(headerSep)

	lines := strings.Split(string(buf[:end]), "\r\n")

	method, target, proto, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, 0, err
	}

	headers := make(Headers, len(lines)-1)
	for _, line := range lines[1:] {
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, 0, framingErrorf("header line without colon: %q", line)
		}
		name := strings.TrimSpace(line[:idx])
		if name == "" {
			return nil, 0, framingErrorf("header line with empty name: %q", line)
		}
		headers[name] = strings.TrimSpace(line[idx+1:])
	}

	// Target problems are reported before the body-completeness check so a
	// bad request line fails immediately instead of waiting for bytes that
	// may never arrive.
	path, query, err := parseTarget(target)
	if err != nil {
		return nil, 0, err
	}

	contentLength, err := headers.ContentLength()
	if err != nil {
		return nil, 0, err
	}
	if len(buf) < headerEnd+contentLength {
		return nil, 0, nil
	}

	// The body is copied out because the caller reuses the connection
	// buffer's backing array when it slides past the consumed bytes.
	body := append([]byte(nil), buf[headerEnd:headerEnd+contentLength]...)

	req := &Request{
		Method:  method,
		Path:    path,
		Proto:   proto,
		Headers: headers,
		Body:    body,
		Query:   query,
	}
	return req, headerEnd + contentLength, nil
}

func parseRequestLine(line string) (method, target, proto string, err error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return "", "", "", framingErrorf("request line must have 3 tokens, got %d: %q", len(parts), line)
	}

	method = strings.ToUpper(parts[0])
	if _, ok := knownMethods[method]; !ok {
		return "", "", "", framingErrorf("unrecognized method %q", parts[0])
	}

	if parts[2] != "HTTP/1.1" {
		return "", "", "", framingErrorf("unsupported protocol version %q", parts[2])
	}

	return method, parts[1], parts[2], nil
}

// parseTarget splits the request target on the first '?', percent-decodes
// the path and parses the query. '+' decodes to space inside the query
// only, never in the path.
func parseTarget(target string) (string, QueryParams, error) {
	rawPath, rawQuery, hasQuery := strings.Cut(target, "?")

	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", nil, framingErrorf("invalid percent-encoding in path %q", rawPath)
	}
	if !strings.HasPrefix(path, "/") {
		return "", nil, framingErrorf("request target %q is not an absolute path", target)
	}

	if !hasQuery {
		return path, QueryParams{}, nil
	}

	query := QueryParams{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawVal, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return "", nil, framingErrorf("invalid percent-encoding in query key %q", rawKey)
		}
		val, err := url.QueryUnescape(rawVal)
		if err != nil {
			return "", nil, framingErrorf("invalid percent-encoding in query value %q", rawVal)
		}
		query[key] = append(query[key], val)
	}
	return path, query, nil
}
