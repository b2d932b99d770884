package middleware

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/wirehttp-go/internal/httpcore"
)

var entropyPool = sync.Pool{
	New: func() any {
		return ulid.Monotonic(rand.Reader, 0)
	},
}

// RequestID returns a middleware that assigns a fresh ULID to each
// request. It runs first in the chain so downstream middlewares can
// correlate their log entries.
func RequestID() httpcore.Middleware {
	return func(next httpcore.Handler) httpcore.Handler {
		return func(req *httpcore.Request) (*httpcore.Response, error) {
			if req.ID == "" {
				req.ID = newRequestID()
			}
			return next(req)
		}
	}
}

func newRequestID() string {
	entropy := entropyPool.Get().(*ulid.MonotonicEntropy)
	defer entropyPool.Put(entropy)

	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// Entropy exhaustion is the only failure mode; fall back to a
		// non-monotonic draw.
		id = ulid.Make()
	}
	return strings.ToLower(id.String())
}
