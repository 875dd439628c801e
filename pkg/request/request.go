package request

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/getmockd/sdkmock/pkg/futures"
)

// Callback receives the outcome of one operation call: an error or a
// success value, never both.
type Callback func(err error, data any)

// Request is the per-call result carrier. One Request is created per
// operation invocation and discarded afterwards; it is safe for concurrent
// use by the completing side and any number of consumers.
type Request struct {
	id      string
	factory futures.Factory
	source  any

	mu     sync.Mutex
	done   chan struct{}
	err    error
	value  any
	cb     Callback
	future *futures.Future
}

// New creates a pending Request.
//
// factory builds the future behind Promise; a nil factory leaves the
// Promise projection unavailable. cb is the caller's optional trailing
// callback. source is the raw replacement value, consulted by
// CreateReadStream when the stored result is not itself a stream.
func New(factory futures.Factory, cb Callback, source any) *Request {
	return &Request{
		id:      uuid.NewString(),
		factory: factory,
		source:  source,
		cb:      cb,
		done:    make(chan struct{}),
	}
}

// ID returns the generated request identifier.
func (r *Request) ID() string {
	return r.id
}

// Complete delivers one completion. The first call fixes the stored
// result; later calls leave storage untouched but still forward their
// outcome to the caller's callback, so a replacement that completes through
// both its callback and a returned future reaches the user both times.
func (r *Request) Complete(err error, value any) {
	r.mu.Lock()
	select {
	case <-r.done:
	default:
		r.err = err
		r.value = value
		close(r.done)
	}
	cb := r.cb
	r.mu.Unlock()

	if cb != nil {
		cb(err, value)
	}
}

// Promise returns the future projection of the stored result, or nil when
// no future factory is configured. The future is memoized: repeated calls
// observe the same settlement without re-running anything.
func (r *Request) Promise() *futures.Future {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factory == nil {
		return nil
	}
	if r.future == nil {
		f := r.factory()
		r.future = f
		select {
		case <-r.done:
			settle(f, r.err, r.value)
		default:
			go func() {
				<-r.done
				r.mu.Lock()
				err, value := r.err, r.value
				r.mu.Unlock()
				settle(f, err, value)
			}()
		}
	}
	return r.future
}

func settle(f *futures.Future, err error, value any) {
	if err != nil {
		f.Reject(err)
		return
	}
	f.Resolve(value)
}

// CreateReadStream projects the result as a byte stream. A stored result
// that is already a stream is returned as-is; otherwise the raw
// replacement is used, either directly (stream) or wrapped in a one-shot
// reader (string and []byte). Anything else yields an empty stream. A
// stored failure yields a stream that reports that failure.
func (r *Request) CreateReadStream() io.ReadCloser {
	r.mu.Lock()
	var stored any
	var storedErr error
	select {
	case <-r.done:
		stored = r.value
		storedErr = r.err
	default:
	}
	source := r.source
	r.mu.Unlock()

	if storedErr != nil {
		return &errReader{err: storedErr}
	}
	if rc, ok := toStream(stored); ok {
		return rc
	}
	if rc, ok := toStream(source); ok {
		return rc
	}
	switch v := source.(type) {
	case string:
		return io.NopCloser(strings.NewReader(v))
	case []byte:
		return io.NopCloser(bytes.NewReader(v))
	}
	return io.NopCloser(strings.NewReader(""))
}

func toStream(v any) (io.ReadCloser, bool) {
	switch s := v.(type) {
	case io.ReadCloser:
		return s, true
	case io.Reader:
		return io.NopCloser(s), true
	}
	return nil, false
}

// On registers an event listener. No events are ever emitted; the request
// returns itself so chained calls written against the real SDK still work.
func (r *Request) On(event string, handler func(*Request)) *Request {
	return r
}

// Send invokes cb immediately with whatever is already stored. Pending
// sends are not buffered; calling Send before completion observes the zero
// result.
func (r *Request) Send(cb Callback) {
	r.mu.Lock()
	err, value := r.err, r.value
	r.mu.Unlock()

	if cb != nil {
		cb(err, value)
	}
}

// Abort is inert; in-flight replacements are not cancelable.
func (r *Request) Abort() *Request {
	return r
}

type errReader struct {
	err error
}

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }
func (e *errReader) Close() error             { return nil }
