package sdk

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ParamValidationError reports parameters rejected by an operation's
// declared input schema.
type ParamValidationError struct {
	Service string
	Method  string
	Cause   error
}

func (e *ParamValidationError) Error() string {
	return fmt.Sprintf("%s.%s: invalid parameters: %v", e.Service, e.Method, e.Cause)
}

func (e *ParamValidationError) Unwrap() error {
	return e.Cause
}

// ValidateParams checks params against a compiled input schema. A nil
// schema means validation is not applicable and always passes.
//
// Params are round-tripped through JSON before validation so Go-typed
// values (ints, nested structs) validate the same way a decoded wire
// payload would.
func ValidateParams(service, method string, schema *jsonschema.Schema, params Params) error {
	if schema == nil {
		return nil
	}

	doc := map[string]any(params)
	if doc == nil {
		doc = map[string]any{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return &ParamValidationError{
			Service: service,
			Method:  method,
			Cause:   fmt.Errorf("parameters not JSON-encodable: %w", err),
		}
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return &ParamValidationError{Service: service, Method: method, Cause: err}
	}

	if err := schema.Validate(instance); err != nil {
		return &ParamValidationError{Service: service, Method: method, Cause: err}
	}
	return nil
}
