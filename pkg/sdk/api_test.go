package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const s3Model = `
service: S3
operations:
  GetObject:
    input:
      type: object
      required: [Bucket, Key]
      properties:
        Bucket:
          type: string
        Key:
          type: string
  ListBuckets: {}
`

func TestLoadAPI(t *testing.T) {
	api, err := LoadAPI([]byte(s3Model))
	require.NoError(t, err)

	assert.Equal(t, "S3", api.Service)
	require.Contains(t, api.Operations, "GetObject")
	require.Contains(t, api.Operations, "ListBuckets")
}

func TestLoadAPIJSON(t *testing.T) {
	// YAML is a superset of JSON, so JSON models load through the same path.
	api, err := LoadAPI([]byte(`{"service":"SNS","operations":{"Publish":{"input":{"type":"object"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "SNS", api.Service)
}

func TestLoadAPIErrors(t *testing.T) {
	_, err := LoadAPI([]byte(`: not yaml :`))
	assert.Error(t, err)

	_, err = LoadAPI([]byte(`operations: {}`))
	assert.ErrorContains(t, err, "missing service name")
}

func TestOperationInputCompilesOnce(t *testing.T) {
	api, err := LoadAPI([]byte(s3Model))
	require.NoError(t, err)

	op := api.Operations["GetObject"]
	first, err := op.Input()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := op.Input()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestOperationWithoutInput(t *testing.T) {
	api, err := LoadAPI([]byte(s3Model))
	require.NoError(t, err)

	schema, err := api.Operations["ListBuckets"].Input()
	require.NoError(t, err)
	assert.Nil(t, schema)
}

func TestOperationBrokenSchemaFailsOnUse(t *testing.T) {
	op := NewOperation("Broken", map[string]any{"type": 12345})
	_, err := op.Input()
	assert.Error(t, err)
}

func TestValidateParams(t *testing.T) {
	api, err := LoadAPI([]byte(s3Model))
	require.NoError(t, err)
	schema, err := api.Operations["GetObject"].Input()
	require.NoError(t, err)

	err = ValidateParams("S3", "GetObject", schema, Params{"Bucket": "b", "Key": "k"})
	assert.NoError(t, err)

	err = ValidateParams("S3", "GetObject", schema, Params{"Bucket": "b"})
	require.Error(t, err)

	var pvErr *ParamValidationError
	require.ErrorAs(t, err, &pvErr)
	assert.Equal(t, "S3", pvErr.Service)
	assert.Equal(t, "GetObject", pvErr.Method)
	assert.Contains(t, pvErr.Error(), "invalid parameters")
}

func TestValidateParamsNilSchema(t *testing.T) {
	assert.NoError(t, ValidateParams("S3", "GetObject", nil, Params{"anything": "goes"}))
}

func TestValidateParamsNonEncodable(t *testing.T) {
	api, err := LoadAPI([]byte(s3Model))
	require.NoError(t, err)
	schema, err := api.Operations["GetObject"].Input()
	require.NoError(t, err)

	err = ValidateParams("S3", "GetObject", schema, Params{"Bucket": func() {}})
	var pvErr *ParamValidationError
	require.ErrorAs(t, err, &pvErr)
}

func TestValidateParamsGoTypedValues(t *testing.T) {
	schema, err := CompileSchema(map[string]any{
		"type":     "object",
		"required": []string{"Count"},
		"properties": map[string]any{
			"Count": map[string]any{"type": "integer"},
		},
	})
	require.NoError(t, err)

	// A Go int round-trips to a JSON number and validates as an integer.
	assert.NoError(t, ValidateParams("Svc", "Op", schema, Params{"Count": 3}))
}
