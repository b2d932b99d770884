package httpcore

import (
	"errors"
	"testing"
)

// tagging middleware appends its name on the way in and on the way out, so
// the composition order is observable from the trace.
func tagging(name string, trace *[]string) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (*Response, error) {
			*trace = append(*trace, name+"-in")
			resp, err := next(req)
			*trace = append(*trace, name+"-out")
			return resp, err
		}
	}
}

func TestChainOrder(t *testing.T) {
	var trace []string

	h := func(req *Request) (*Response, error) {
		trace = append(trace, "handler")
		return &Response{Status: 200}, nil
	}

	// Chain(h, A, B) must behave as A(B(h)).
	wrapped := Chain(h, tagging("A", &trace), tagging("B", &trace))
	if _, err := wrapped(&Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"A-in", "B-in", "handler", "B-out", "A-out"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestChainEmpty(t *testing.T) {
	h := func(req *Request) (*Response, error) {
		return &Response{Status: 204}, nil
	}
	resp, err := Chain(h)(&Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != 204 {
		t.Errorf("status = %d, want 204", resp.Status)
	}
}

func TestMiddlewareShortCircuit(t *testing.T) {
	reject := func(next Handler) Handler {
		return func(req *Request) (*Response, error) {
			return Text(401, "authorization header missing"), nil
		}
	}

	called := false
	h := func(req *Request) (*Response, error) {
		called = true
		return &Response{Status: 200}, nil
	}

	resp, err := Chain(h, Middleware(reject))(&Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != 401 {
		t.Errorf("status = %d, want 401", resp.Status)
	}
	if called {
		t.Error("inner handler ran despite rejection")
	}
}

func TestMiddlewareErrorPropagation(t *testing.T) {
	wantErr := errors.New("boom")
	h := func(req *Request) (*Response, error) {
		return nil, wantErr
	}

	var trace []string
	_, err := Chain(h, tagging("A", &trace))(&Request{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
}
