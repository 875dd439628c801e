package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// API is a service's declared operation model.
type API struct {
	Service    string
	Operations map[string]*Operation
}

// Operation declares one operation and its input schema. The schema
// document is compiled on first use and reused afterwards.
type Operation struct {
	Name string

	input  any
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewOperation declares an operation with a raw input schema document
// (any JSON-marshalable value; nil means no declared input).
func NewOperation(name string, input any) *Operation {
	return &Operation{Name: name, input: input}
}

// Input returns the compiled input schema, or nil when the operation
// declares none.
func (o *Operation) Input() (*jsonschema.Schema, error) {
	o.once.Do(func() {
		o.schema, o.err = CompileSchema(o.input)
	})
	return o.schema, o.err
}

// apiModel is the on-disk shape accepted by LoadAPI.
type apiModel struct {
	Service    string `yaml:"service" json:"service"`
	Operations map[string]struct {
		Input map[string]any `yaml:"input" json:"input"`
	} `yaml:"operations" json:"operations"`
}

// LoadAPI parses a YAML or JSON service model:
//
//	service: S3
//	operations:
//	  GetObject:
//	    input:
//	      type: object
//	      required: [Bucket, Key]
//
// Input schemas are standard JSON Schema documents; they compile lazily,
// so a model with a broken schema loads fine and fails on first use.
func LoadAPI(data []byte) (*API, error) {
	var model apiModel
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse api model: %w", err)
	}
	if model.Service == "" {
		return nil, fmt.Errorf("api model missing service name")
	}

	api := &API{
		Service:    model.Service,
		Operations: make(map[string]*Operation, len(model.Operations)),
	}
	for name, op := range model.Operations {
		var input any
		if op.Input != nil {
			input = op.Input
		}
		api.Operations[name] = NewOperation(name, input)
	}
	return api, nil
}

// CompileSchema compiles a raw schema document. The document is
// round-tripped through JSON so YAML-parsed and hand-built maps compile
// identically. A nil document compiles to a nil schema.
func CompileSchema(doc any) (*jsonschema.Schema, error) {
	if doc == nil {
		return nil, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("input.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("input.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
