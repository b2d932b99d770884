package httpcore

import "strconv"

// Response is the triple a handler returns: status code, content type and
// raw body bytes. It is produced exactly once per request and consumed
// exactly once by the serializer.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// reasonPhrases covers the statuses this server emits. An unknown code
// still serializes, with the fallback phrase.
var reasonPhrases = map[int]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	409: "Conflict",
	413: "Payload Too Large",
	429: "Too Many Requests",
	500: "Internal Server Error",
	501: "Not Implemented",
}

const fallbackReason = "Unknown Status"

// ReasonPhrase returns the reason phrase for a status code, or the
// fallback literal for codes outside the table.
func ReasonPhrase(status int) string {
	if p, ok := reasonPhrases[status]; ok {
		return p
	}
	return fallbackReason
}

// KeepAlive reports whether the connection survives this response.
// Success-class responses keep the connection open; every error path
// closes it.
func (r *Response) KeepAlive() bool {
	return r.Status < 400
}

// Encode serializes the response into wire bytes: status line, headers,
// blank line, body. The caller writes the returned slice in a single
// Write so a response is never interleaved with another.
func (r *Response) Encode() []byte {
	contentType := r.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}
	connection := "close"
	if r.KeepAlive() {
		connection = "keep-alive"
	}

	// Status line and headers are ASCII; sizing the buffer up front keeps
	// serialization to one allocation for typical responses.
	head := "HTTP/1.1 " + strconv.Itoa(r.Status) + " " + ReasonPhrase(r.Status) + "\r\n" +
		"Content-Type: " + contentType + "\r\n" +
		"Content-Length: " + strconv.Itoa(len(r.Body)) + "\r\n" +
		"Connection: " + connection + "\r\n" +
		"\r\n"

	out := make([]byte, 0, len(head)+len(r.Body))
	out = append(out, head...)
	out = append(out, r.Body...)
	return out
}

// Text builds a plain-text response in the convention the built-in error
// paths use: "<code> <reason>: <detail>".
func Text(status int, detail string) *Response {
	body := strconv.Itoa(status) + " " + ReasonPhrase(status)
	if detail != "" {
		body += ": " + detail
	}
	return &Response{Status: status, ContentType: "text/plain", Body: []byte(body)}
}
