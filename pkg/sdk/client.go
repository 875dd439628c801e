package sdk

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/sdkmock/pkg/futures"
	"github.com/getmockd/sdkmock/pkg/request"
)

// Params carries the caller-supplied parameters of one operation call.
type Params map[string]any

// Invoker executes one operation against the live service. It is the
// client's real transport; stubbed operations never reach it.
type Invoker func(method string, params Params) (any, error)

// OperationFunc builds and resolves the request for one call. The
// interception engine installs these per (instance, method).
type OperationFunc func(c *Client, method string, params Params, cb request.Callback) *request.Request

// Client is one service client instance. Constructors return Clients;
// the interception engine mutates their operation table synchronously
// during registration and restoration, never mid-call.
type Client struct {
	root    *Root
	service string
	api     *API
	inputs  map[string]*jsonschema.Schema
	invoke  Invoker
	pv      *bool

	mu        sync.RWMutex
	overrides map[string]OperationFunc
}

// Option configures a Client at construction.
type Option func(*Client)

// WithAPI attaches the service's API model, the schema source for
// top-level clients.
func WithAPI(api *API) Option {
	return func(c *Client) { c.api = api }
}

// WithInputSchema declares a per-method input schema directly, the shape
// nested helper clients use instead of a full API model.
func WithInputSchema(method string, schema *jsonschema.Schema) Option {
	return func(c *Client) {
		if c.inputs == nil {
			c.inputs = make(map[string]*jsonschema.Schema)
		}
		c.inputs[method] = schema
	}
}

// WithInvoker sets the client's real transport.
func WithInvoker(fn Invoker) Option {
	return func(c *Client) { c.invoke = fn }
}

// WithParamValidation overrides the root's parameter-validation setting
// for this client only.
func WithParamValidation(on bool) Option {
	return func(c *Client) { c.pv = &on }
}

// NewClient builds a client bound to root. SDK constructors call this and
// layer their own options on top of the caller's.
func NewClient(root *Root, service string, opts ...Option) *Client {
	c := &Client{
		root:      root,
		service:   service,
		overrides: make(map[string]OperationFunc),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the SDK root this client was constructed through.
func (c *Client) Root() *Root {
	return c.root
}

// Service returns the client's service path.
func (c *Client) Service() string {
	return c.service
}

// API returns the service's API model, or nil for nested helper clients.
func (c *Client) API() *API {
	return c.api
}

// InputSchema returns the flat per-method schema for nested clients, or
// nil when none is declared.
func (c *Client) InputSchema(method string) *jsonschema.Schema {
	return c.inputs[method]
}

// ParamValidation reports the effective validation setting: the client
// override when present, the root setting otherwise.
func (c *Client) ParamValidation() bool {
	if c.pv != nil {
		return *c.pv
	}
	if c.root != nil {
		return c.root.ParamValidation()
	}
	return false
}

// SetOperation installs an operation override for method.
func (c *Client) SetOperation(method string, fn OperationFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[method] = fn
}

// ResetOperation removes the override for method, sending future calls
// back to the real transport.
func (c *Client) ResetOperation(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.overrides, method)
}

// Call invokes method with params. The last callback, if any, becomes the
// request's callback; an installed override owns the whole call, and
// anything else runs synchronously through the real transport.
func (c *Client) Call(method string, params Params, cbs ...request.Callback) *request.Request {
	var cb request.Callback
	if n := len(cbs); n > 0 {
		cb = cbs[n-1]
	}

	c.mu.RLock()
	op := c.overrides[method]
	c.mu.RUnlock()
	if op != nil {
		return op(c, method, params, cb)
	}

	var factory futures.Factory
	if c.root != nil {
		factory = c.root.FutureFactory()
	}
	req := request.New(factory, cb, nil)
	if c.invoke == nil {
		req.Complete(fmt.Errorf("%s.%s: no transport configured", c.service, method), nil)
		return req
	}
	value, err := c.invoke(method, params)
	req.Complete(err, value)
	return req
}
