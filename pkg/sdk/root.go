package sdk

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getmockd/sdkmock/pkg/futures"
)

// ErrUnknownService is wrapped by Resolve when a dot path does not lead to
// a registered service.
var ErrUnknownService = errors.New("unknown service")

// Constructor builds a client for one service. The interception engine
// swaps constructors in and out of their Slots; a swapped-in constructor
// must produce instances indistinguishable from the original's except for
// their stubbed operations.
type Constructor func(root *Root, opts ...Option) *Client

// Slot holds the current constructor for one service path. Swap captures
// the original on first use so Restore can put it back.
type Slot struct {
	mu       sync.Mutex
	path     string
	current  Constructor
	original Constructor
	children map[string]*Slot
}

// Constructor returns the currently installed constructor.
func (s *Slot) Constructor() Constructor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Original returns the constructor captured before any Swap, or the
// current one if the slot was never swapped.
func (s *Slot) Original() Constructor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original != nil {
		return s.original
	}
	return s.current
}

// Swap installs ctor, capturing the previous constructor on the first
// swap so Restore can recover it.
func (s *Slot) Swap(ctor Constructor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original == nil {
		s.original = s.current
	}
	s.current = ctor
}

// Restore puts the captured original back. Restoring an unswapped slot is
// a no-op.
func (s *Slot) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.original != nil {
		s.current = s.original
		s.original = nil
	}
}

// Swapped reports whether the slot currently holds a substitute.
func (s *Slot) Swapped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original != nil
}

// Root is one SDK entry point: the service constructor tree plus the
// SDK-global configuration the engine consults on every call.
type Root struct {
	mu      sync.RWMutex
	slots   map[string]*Slot
	factory futures.Factory
	pv      bool
}

// NewRoot creates an empty Root with the default future factory.
func NewRoot() *Root {
	return &Root{
		slots:   make(map[string]*Slot),
		factory: futures.New,
	}
}

// RegisterService installs a constructor at a dot path, creating
// intermediate namespace slots as needed. Registering the same path twice
// is an error.
func (r *Root) RegisterService(path string, ctor Constructor) error {
	if path == "" {
		return fmt.Errorf("empty service path")
	}
	if ctor == nil {
		return fmt.Errorf("service %q: nil constructor", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	slot := r.slotLocked(path, true)
	if slot.Constructor() != nil {
		return fmt.Errorf("service %q already registered", path)
	}
	slot.mu.Lock()
	slot.current = ctor
	slot.mu.Unlock()
	return nil
}

// Resolve walks the dot path and returns the slot holding that service's
// constructor.
func (r *Root) Resolve(path string) (*Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot := r.slotLocked(path, false)
	if slot == nil || slot.Constructor() == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, path)
	}
	return slot, nil
}

// slotLocked walks the segment tree under r.mu, optionally creating
// missing nodes.
func (r *Root) slotLocked(path string, create bool) *Slot {
	segments := strings.Split(path, ".")

	slot, ok := r.slots[segments[0]]
	if !ok {
		if !create {
			return nil
		}
		slot = &Slot{path: segments[0]}
		r.slots[segments[0]] = slot
	}

	for _, seg := range segments[1:] {
		slot.mu.Lock()
		child, ok := slot.children[seg]
		if !ok {
			if !create {
				slot.mu.Unlock()
				return nil
			}
			if slot.children == nil {
				slot.children = make(map[string]*Slot)
			}
			child = &Slot{path: slot.path + "." + seg}
			slot.children[seg] = child
		}
		slot.mu.Unlock()
		slot = child
	}
	return slot
}

// New constructs a client through whatever constructor currently occupies
// the path's slot — the real one, or the interception engine's substitute.
func (r *Root) New(path string, opts ...Option) (*Client, error) {
	slot, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	return slot.Constructor()(r, opts...), nil
}

// SetFutureFactory replaces the factory behind every future request's
// Promise projection. Passing nil disables the projection entirely.
func (r *Root) SetFutureFactory(f futures.Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factory = f
}

// FutureFactory returns the currently configured future factory.
func (r *Root) FutureFactory() futures.Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factory
}

// SetParamValidation toggles SDK-wide parameter validation. Individual
// clients may override it at construction.
func (r *Root) SetParamValidation(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pv = on
}

// ParamValidation reports the SDK-wide parameter-validation setting.
func (r *Root) ParamValidation() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pv
}

var (
	rootsMu sync.RWMutex
	roots   = make(map[string]func() (*Root, error))
)

// Register makes an SDK root available to sdkmock.SetSDK under name.
// Panics on duplicate or nil registration, mirroring database/sql.
func Register(name string, open func() (*Root, error)) {
	rootsMu.Lock()
	defer rootsMu.Unlock()
	if open == nil {
		panic("sdk: Register open func is nil")
	}
	if _, dup := roots[name]; dup {
		panic("sdk: Register called twice for " + name)
	}
	roots[name] = open
}

// Open resolves a registered SDK root by name.
func Open(name string) (*Root, error) {
	rootsMu.RLock()
	open, ok := roots[name]
	rootsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("sdk %q not registered", name)
	}
	return open()
}
