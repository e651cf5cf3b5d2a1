package mock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zjrosen/signup/internal/registration"
)

// ErrRejected is a canned failure, standing in for a 400 from the server.
var ErrRejected = errors.New("mock: registration rejected")

// Registrar implements registration.Registrar for tests.
type Registrar struct {
	// RegisterFunc, if set, decides the result of every call after the
	// scripted results are exhausted.
	RegisterFunc func(ctx context.Context, p registration.Payload) error

	mu       sync.Mutex
	calls    []registration.Payload
	script   []error
	gate     chan struct{}
	observed chan struct{}
}

var _ registration.Registrar = (*Registrar)(nil)

// NewRegistrar creates a registrar whose calls succeed.
func NewRegistrar() *Registrar {
	return &Registrar{observed: make(chan struct{}, 1024)}
}

// WithGate makes every call block until Release is called (or ctx ends).
func (r *Registrar) WithGate() *Registrar {
	r.mu.Lock()
	r.gate = make(chan struct{})
	r.mu.Unlock()
	return r
}

// Release unblocks all current and future gated calls.
func (r *Registrar) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gate != nil {
		close(r.gate)
		r.gate = nil
	}
}

// FailNext queues err as the result of the next unscripted call.
func (r *Registrar) FailNext(err error) *Registrar {
	r.mu.Lock()
	r.script = append(r.script, err)
	r.mu.Unlock()
	return r
}

// SucceedNext queues a success as the result of the next unscripted call.
func (r *Registrar) SucceedNext() *Registrar {
	return r.FailNext(nil)
}

// Register records p and returns the next scripted result.
func (r *Registrar) Register(ctx context.Context, p registration.Payload) error {
	r.mu.Lock()
	r.calls = append(r.calls, p)
	gate := r.gate
	var result error
	scripted := len(r.script) > 0
	if scripted {
		result = r.script[0]
		r.script = r.script[1:]
	}
	fn := r.RegisterFunc
	r.mu.Unlock()

	select {
	case r.observed <- struct{}{}:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if !scripted && fn != nil {
		return fn(ctx, p)
	}
	return result
}

// CallCount returns how many times Register was called.
func (r *Registrar) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of every payload received, in order.
func (r *Registrar) Calls() []registration.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]registration.Payload(nil), r.calls...)
}

// LastCall returns the most recent payload, or false if there was none.
func (r *Registrar) LastCall() (registration.Payload, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return registration.Payload{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// WaitForCalls blocks until at least n calls have been made, failing the
// test after a few seconds.
func (r *Registrar) WaitForCalls(t testing.TB, n int) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for r.CallCount() < n {
		select {
		case <-r.observed:
		case <-time.After(10 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for %d register calls, got %d", n, r.CallCount())
		}
	}
}

// Reset clears recorded calls and scripted results.
func (r *Registrar) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.script = nil
}
