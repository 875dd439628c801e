package sdkmock

import (
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/getmockd/sdkmock/pkg/request"
	"github.com/getmockd/sdkmock/pkg/sdk"
)

// operation builds the stub installed on a (client, method) pair. Each
// call gets its own request; the replacement's completions — callback,
// returned future, or returned stream — all land in that request's single
// stored result, first writer winning.
func (m *Mocker) operation(me *methodEntry) sdk.OperationFunc {
	behavior := me.behavior
	return func(c *sdk.Client, method string, params sdk.Params, cb request.Callback) *request.Request {
		req := request.New(c.Root().FutureFactory(), cb, behavior.Raw())

		if err := m.validateParams(c, method, params); err != nil {
			// Declared input rejected the call: complete without ever
			// invoking the replacement.
			req.Complete(err, nil)
			return req
		}

		behavior.Invoke(method, params, req.Complete)
		return req
	}
}

// validateParams is the bridge to the SDK's own schema validation. It
// runs only when the client's effective configuration asks for it, and
// treats a missing schema as validation not applicable.
func (m *Mocker) validateParams(c *sdk.Client, method string, params sdk.Params) error {
	if !c.ParamValidation() {
		return nil
	}
	schema, err := inputSchema(c, method)
	if err != nil {
		m.log.Warn("input schema unavailable, skipping validation",
			"service", c.Service(), "method", method, "error", err)
		return nil
	}
	return sdk.ValidateParams(c.Service(), method, schema, params)
}

// inputSchema locates the declared input schema for method. Top-level
// clients carry an API model; nested helper clients declare flat
// per-method schemas. Absence of both yields nil: no validation.
func inputSchema(c *sdk.Client, method string) (*jsonschema.Schema, error) {
	if api := c.API(); api != nil {
		if op := api.Operations[method]; op != nil {
			return op.Input()
		}
		return nil, nil
	}
	return c.InputSchema(method), nil
}
