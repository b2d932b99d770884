package httpcore

// Handler is the contract between the engine and business logic: it takes
// one framed request and produces one response. A returned error (or a
// panic) is caught at the connection boundary and converted to a 500; the
// connection is closed afterwards because handler state is not trusted
// after a failure.
type Handler func(req *Request) (*Response, error)

// Middleware wraps a Handler with cross-cutting behavior. A middleware may
// reject the request without calling the inner handler, populate the
// request's Principal before delegating, or pass through unchanged. It must
// not keep per-request state across invocations.
type Middleware func(Handler) Handler

// Chain folds the middleware list around h in reverse order, so that
// mws[0] becomes the outermost wrapper: it sees the raw request first and
// the final response last. Chain(h, A, B) == A(B(h)).
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
