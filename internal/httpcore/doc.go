// Package httpcore implements the HTTP/1.1 engine for wirehttp: the
// listener/accept loop, the per-connection state machine, the incremental
// request framer, the route table, the middleware chain, and the response
// serializer.
//
// The package owns the raw TCP byte stream end to end and does not use
// net/http. Business logic (authentication, user storage, static files)
// plugs in through the Handler contract and never below it.
//
// Threading model: the accept loop runs on one goroutine and spawns one
// goroutine per accepted connection. The route table, the middleware list
// and the auth wrapper are frozen before the listener starts accepting and
// are read-only afterwards, so connection goroutines share them without
// locking. Every buffer, request and response is owned by exactly one
// connection goroutine.
package httpcore
