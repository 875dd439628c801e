package sdkmock

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getmockd/sdkmock/pkg/logging"
	"github.com/getmockd/sdkmock/pkg/replacement"
	"github.com/getmockd/sdkmock/pkg/sdk"
)

// Mocker is the process-scoped registry of mocked services. The zero
// value is not usable; construct with New. All methods are safe for
// concurrent use.
type Mocker struct {
	mu       sync.Mutex
	root     *sdk.Root
	services map[string]*serviceEntry
	log      *slog.Logger
}

// serviceEntry tracks one mocked service: its constructor slot, the
// registered methods, and every client instance produced since arming.
type serviceEntry struct {
	path    string
	slot    *sdk.Slot
	invoked bool
	clients []*sdk.Client
	methods map[string]*methodEntry
}

type methodEntry struct {
	name     string
	behavior *replacement.Behavior
}

// Stub is the handle returned by Mock and Remock.
type Stub struct {
	m       *Mocker
	service string
	method  string
}

// Service returns the mocked service path.
func (s *Stub) Service() string { return s.service }

// Method returns the mocked method name.
func (s *Stub) Method() string { return s.method }

// Restore removes just this stub, equivalent to
// Restore(s.Service(), s.Method()) on the owning Mocker.
func (s *Stub) Restore() {
	s.m.Restore(s.service, s.method)
}

// New creates an empty Mocker. Its logger is configured from the
// SDKMOCK_LOG_* environment variables.
func New() *Mocker {
	return &Mocker{
		services: make(map[string]*serviceEntry),
		log:      logging.FromEnv(),
	}
}

// SetLogger replaces the Mocker's logger.
func (m *Mocker) SetLogger(log *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log != nil {
		m.log = log
	}
}

// SetSDK selects the SDK root registered under name (see sdk.Register).
func (m *Mocker) SetSDK(name string) error {
	root, err := sdk.Open(name)
	if err != nil {
		return err
	}
	return m.SetSDKInstance(root)
}

// SetSDKInstance selects the SDK root to intercept. It fails while any
// service is mocked: swapping SDKs would strand installed stubs.
func (m *Mocker) SetSDKInstance(root *sdk.Root) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.services) > 0 {
		return fmt.Errorf("cannot change SDK while %d service(s) are mocked", len(m.services))
	}
	m.root = root
	return nil
}

// Mock registers a replacement for service.method. The first registration
// for a service arms construction interception; if clients were already
// constructed, the stub is installed on each of them immediately.
// Registering the same pair again without Remock keeps the stored
// replacement.
func (m *Mocker) Mock(service, method string, repl any) (*Stub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.serviceLocked(service)
	if err != nil {
		return nil, err
	}

	me, ok := e.methods[method]
	if !ok {
		me = &methodEntry{name: method, behavior: replacement.Normalize(repl)}
		e.methods[method] = me
		m.log.Debug("registered replacement",
			"service", service, "method", method, "kind", me.behavior.Kind().String())
	}
	if e.invoked {
		m.installAllLocked(e, me)
	}
	return &Stub{m: m, service: service, method: method}, nil
}

// Remock replaces the registration for service.method, fully restoring
// any previous stub first.
func (m *Mocker) Remock(service, method string, repl any) (*Stub, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, err := m.serviceLocked(service)
	if err != nil {
		return nil, err
	}

	if _, ok := e.methods[method]; ok {
		m.restoreMethodLocked(e, method)
	}
	me := &methodEntry{name: method, behavior: replacement.Normalize(repl)}
	e.methods[method] = me
	if e.invoked {
		m.installAllLocked(e, me)
	}
	return &Stub{m: m, service: service, method: method}, nil
}

// Restore tears down interception. With no arguments every service is
// restored; with one, that service alone; with two, a single method.
// Unknown targets are logged and ignored — defensive teardown is normal
// in test cleanup.
func (m *Mocker) Restore(target ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch len(target) {
	case 0:
		for path := range m.services {
			m.restoreServiceLocked(path)
		}
	case 1:
		if !m.restoreServiceLocked(target[0]) {
			m.log.Warn("restore: service not mocked", "service", target[0])
		}
	default:
		service, method := target[0], target[1]
		e, ok := m.services[service]
		if !ok {
			m.log.Warn("restore: service not mocked", "service", service)
			return
		}
		if _, ok := e.methods[method]; !ok {
			m.log.Warn("restore: method not mocked", "service", service, "method", method)
			return
		}
		m.restoreMethodLocked(e, method)
	}
}

// serviceLocked returns the entry for service, creating it — and arming
// construction interception — on first sight.
func (m *Mocker) serviceLocked(service string) (*serviceEntry, error) {
	if m.root == nil {
		return nil, fmt.Errorf("no SDK configured: call SetSDK or SetSDKInstance first")
	}
	if e, ok := m.services[service]; ok {
		return e, nil
	}

	slot, err := m.root.Resolve(service)
	if err != nil {
		return nil, err
	}
	e := &serviceEntry{
		path:    service,
		slot:    slot,
		methods: make(map[string]*methodEntry),
	}
	slot.Swap(m.interceptConstruction(e))
	m.services[service] = e
	m.log.Debug("armed construction interception", "service", service)
	return e, nil
}

// installAllLocked puts me's stub on every tracked client. Installing
// over an existing stub for the same method replaces it; no instance ever
// carries two.
func (m *Mocker) installAllLocked(e *serviceEntry, me *methodEntry) {
	for _, c := range e.clients {
		c.SetOperation(me.name, m.operation(me))
	}
}

func (m *Mocker) restoreMethodLocked(e *serviceEntry, method string) {
	for _, c := range e.clients {
		c.ResetOperation(method)
	}
	delete(e.methods, method)
}

func (m *Mocker) restoreServiceLocked(path string) bool {
	e, ok := m.services[path]
	if !ok {
		return false
	}
	for name := range e.methods {
		m.restoreMethodLocked(e, name)
	}
	e.slot.Restore()
	delete(m.services, path)
	m.log.Debug("restored service", "service", path)
	return true
}
