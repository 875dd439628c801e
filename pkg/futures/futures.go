package futures

import (
	"context"
	"sync"
)

// Factory constructs the Future backing a request's Promise projection.
type Factory func() *Future

// Future is a single-settlement value container. The zero value is not
// usable; construct with New.
type Future struct {
	once  sync.Once
	done  chan struct{}
	value any
	err   error
}

// New creates an unsettled Future. It is the default Factory.
func New() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve settles the future with a success value. It reports whether this
// call performed the settlement; a future settles at most once and later
// calls are ignored.
func (f *Future) Resolve(value any) bool {
	return f.settle(value, nil)
}

// Reject settles the future with a failure. Like Resolve, only the first
// settlement wins.
func (f *Future) Reject(err error) bool {
	return f.settle(nil, err)
}

func (f *Future) settle(value any, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Done returns a channel closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the future has settled.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the future settles or ctx is canceled. After
// settlement it always returns the same value/error pair.
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
