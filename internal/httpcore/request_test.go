package httpcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedInChunks replays a wire request into Parse the way the connection
// handler does: append one chunk, retry, until a request frames. It fails
// the test if Parse ever consumes bytes before a full request is buffered.
func feedInChunks(t *testing.T, wire string, chunkSize int) (*Request, int) {
	t.Helper()

	var buf []byte
	for pos := 0; pos < len(wire); pos += chunkSize {
		end := pos + chunkSize
		if end > len(wire) {
			end = len(wire)
		}
		buf = append(buf, wire[pos:end]...)

		req, consumed, err := Parse(buf)
		require.NoError(t, err)
		if req != nil {
			return req, consumed
		}
		require.Zero(t, consumed, "need-more-data must consume nothing")
	}
	t.Fatalf("no request framed from %q", wire)
	return nil, 0
}

func TestParseSimpleGet(t *testing.T) {
	wire := "GET /search?q=test&page=1 HTTP/1.1\r\nHost: example.com\r\n\r\n"

	req, consumed, err := Parse([]byte(wire))
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, len(wire), consumed)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "/search", req.Path)
	assert.Equal(t, "HTTP/1.1", req.Proto)
	assert.Equal(t, "test", req.Query.Get("q"))
	assert.Equal(t, "1", req.Query.Get("page"))
	assert.Equal(t, "example.com", req.Headers.Get("Host"))
	assert.Empty(t, req.Body)
}

func TestParseChunkBoundaryInvariance(t *testing.T) {
	wire := "POST /api/data?tag=a&tag=b HTTP/1.1\r\n" +
		"Host: localhost\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 17\r\n" +
		"\r\n" +
		`{"hello":"world"}`

	whole, wholeConsumed, err := Parse([]byte(wire))
	require.NoError(t, err)
	require.NotNil(t, whole)
	require.Equal(t, len(wire), wholeConsumed)

	for _, chunkSize := range []int{1, 2, 3, 7, 16, len(wire)} {
		req, consumed := feedInChunks(t, wire, chunkSize)
		assert.Equal(t, wholeConsumed, consumed, "chunk size %d", chunkSize)
		assert.Equal(t, whole.Method, req.Method, "chunk size %d", chunkSize)
		assert.Equal(t, whole.Path, req.Path, "chunk size %d", chunkSize)
		assert.Equal(t, whole.Headers, req.Headers, "chunk size %d", chunkSize)
		assert.Equal(t, whole.Query, req.Query, "chunk size %d", chunkSize)
		assert.Equal(t, whole.Body, req.Body, "chunk size %d", chunkSize)
	}
}

func TestParseNeedMoreData(t *testing.T) {
	cases := []struct {
		name string
		buf  string
	}{
		{"empty buffer", ""},
		{"partial request line", "GET /x HT"},
		{"headers without terminator", "GET /x HTTP/1.1\r\nHost: a\r\n"},
		{"declared body not fully arrived", "POST /x HTTP/1.1\r\nContent-Length: 20\r\n\r\nshort_body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, consumed, err := Parse([]byte(tc.buf))
			require.NoError(t, err)
			assert.Nil(t, req)
			assert.Zero(t, consumed)
		})
	}
}

func TestParseFramingErrors(t *testing.T) {
	cases := []struct {
		name string
		buf  string
	}{
		{"two-token request line", "GET HTTP/1.1\r\n\r\n"},
		{"four-token request line", "GET /a /b HTTP/1.1\r\n\r\n"},
		{"unknown method", "BREW /pot HTTP/1.1\r\n\r\n"},
		{"http 1.0", "GET / HTTP/1.0\r\n\r\n"},
		{"http 2", "GET / HTTP/2\r\n\r\n"},
		{"header without colon", "GET / HTTP/1.1\r\nNoColonHere\r\n\r\n"},
		{"header with empty name", "GET / HTTP/1.1\r\n: value\r\n\r\n"},
		{"non-numeric content length", "POST / HTTP/1.1\r\nContent-Length: abc\r\n\r\n"},
		{"negative content length", "POST / HTTP/1.1\r\nContent-Length: -5\r\n\r\n"},
		{"relative target", "GET no-slash HTTP/1.1\r\n\r\n"},
		{"bad percent encoding in path", "GET /a%zz HTTP/1.1\r\n\r\n"},
		{"bad target with body still pending", "POST /a%zz HTTP/1.1\r\nContent-Length: 20\r\n\r\nshort"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, consumed, err := Parse([]byte(tc.buf))
			require.Error(t, err)
			var fe *FramingError
			require.ErrorAs(t, err, &fe)
			assert.NotEmpty(t, fe.Reason)
			assert.Nil(t, req)
			assert.Zero(t, consumed)
		})
	}
}

func TestParseMethodCaseNormalization(t *testing.T) {
	req, _, err := Parse([]byte("get / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
}

func TestParseQuerySemantics(t *testing.T) {
	cases := []struct {
		name   string
		target string
		path   string
		query  QueryParams
	}{
		{
			"no query",
			"/plain",
			"/plain",
			QueryParams{},
		},
		{
			"repeated key keeps arrival order",
			"/s?tag=a&x=1&tag=b&tag=c",
			"/s",
			QueryParams{"tag": {"a", "b", "c"}, "x": {"1"}},
		},
		{
			"key without equals maps to empty string",
			"/s?flag&x=1",
			"/s",
			QueryParams{"flag": {""}, "x": {"1"}},
		},
		{
			"plus decodes to space in query only",
			"/a+b?q=c+d",
			"/a+b",
			QueryParams{"q": {"c d"}},
		},
		{
			"percent decoding in path and query",
			"/files/a%20b?name=%C3%A9",
			"/files/a b",
			QueryParams{"name": {"é"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wire := "GET " + tc.target + " HTTP/1.1\r\n\r\n"
			req, _, err := Parse([]byte(wire))
			require.NoError(t, err)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, tc.query, req.Query)
		})
	}
}

func TestParseHeaderSemantics(t *testing.T) {
	wire := "GET / HTTP/1.1\r\n" +
		"X-Tag: first\r\n" +
		"X-Tag: second\r\n" +
		"x-tag: lower\r\n" +
		"  Padded  :  value  \r\n" +
		"\r\n"

	req, _, err := Parse([]byte(wire))
	require.NoError(t, err)

	// Names are case-sensitive; a repeated name keeps the last value.
	assert.Equal(t, "second", req.Headers.Get("X-Tag"))
	assert.Equal(t, "lower", req.Headers.Get("x-tag"))
	assert.Equal(t, "value", req.Headers.Get("Padded"))

	v, ok := req.Headers.Lookup("PADDED")
	assert.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestParseBody(t *testing.T) {
	t.Run("exact content length with pipelined remainder", func(t *testing.T) {
		wire := "POST /x HTTP/1.1\r\nContent-Length: 4\r\n\r\nbodyGET /next HTTP/1.1\r\n\r\n"
		req, consumed, err := Parse([]byte(wire))
		require.NoError(t, err)
		assert.Equal(t, []byte("body"), req.Body)
		assert.Equal(t, strings.Index(wire, "GET /next"), consumed)

		next, nextConsumed, err := Parse([]byte(wire)[consumed:])
		require.NoError(t, err)
		assert.Equal(t, "/next", next.Path)
		assert.Equal(t, len(wire)-consumed, nextConsumed)
	})

	t.Run("missing content length means empty body", func(t *testing.T) {
		req, _, err := Parse([]byte("POST /x HTTP/1.1\r\n\r\n"))
		require.NoError(t, err)
		assert.Empty(t, req.Body)
	})

	t.Run("body copy does not alias the buffer", func(t *testing.T) {
		buf := []byte("POST /x HTTP/1.1\r\nContent-Length: 4\r\n\r\nbody")
		req, _, err := Parse(buf)
		require.NoError(t, err)
		copy(buf, make([]byte, len(buf)))
		assert.Equal(t, []byte("body"), req.Body)
	})

	t.Run("utf8 text view", func(t *testing.T) {
		req, _, err := Parse([]byte("POST /x HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"))
		require.NoError(t, err)
		text, ok := req.Text()
		assert.True(t, ok)
		assert.Equal(t, "hello", text)
	})

	t.Run("binary body yields no text view", func(t *testing.T) {
		req, _, err := Parse([]byte("POST /x HTTP/1.1\r\nContent-Length: 2\r\n\r\n\xff\xfe"))
		require.NoError(t, err)
		_, ok := req.Text()
		assert.False(t, ok)
		assert.Equal(t, []byte{0xff, 0xfe}, req.Body)
	})
}

func TestParseContentLengthCaseInsensitive(t *testing.T) {
	req, consumed, err := Parse([]byte("POST /x HTTP/1.1\r\ncontent-length: 3\r\n\r\nabc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), req.Body)
	assert.Equal(t, len("POST /x HTTP/1.1\r\ncontent-length: 3\r\n\r\nabc"), consumed)
}
