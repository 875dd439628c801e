package sdkmock

import (
	"github.com/getmockd/sdkmock/pkg/sdk"
)

// interceptConstruction wraps e's real constructor. Every construction
// produces a genuine instance through the captured original — callers get
// the real prototype — then the instance is tracked and each registered
// method stub is installed before it is handed back.
func (m *Mocker) interceptConstruction(e *serviceEntry) sdk.Constructor {
	original := e.slot.Constructor()
	return func(root *sdk.Root, opts ...sdk.Option) *sdk.Client {
		c := original(root, opts...)

		m.mu.Lock()
		e.invoked = true
		e.clients = append(e.clients, c)
		for _, me := range e.methods {
			c.SetOperation(me.name, m.operation(me))
		}
		m.mu.Unlock()

		m.log.Debug("intercepted construction", "service", e.path)
		return c
	}
}
