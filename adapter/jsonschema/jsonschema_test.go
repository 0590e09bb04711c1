package jsonschema

import (
	"strings"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertSchema(t *testing.T, s schema.Schema) *jsonschema.Schema {
	t.Helper()
	n, err := New().Convert(s)
	require.NoError(t, err)
	return n.(*Native).Schema
}

func propertyNames(s *jsonschema.Schema) []string {
	var names []string
	for p := s.Properties.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

func TestConvertKeepsFieldOrder(t *testing.T) {
	js := convertSchema(t, schema.NewStruct(
		schema.NewField("z", schema.NewPrimitive(schema.String)),
		schema.NewField("a", schema.NewPrimitive(schema.Long)),
		schema.NewField("m", schema.NewPrimitive(schema.Double)),
	))
	assert.Equal(t, jsonschema.Version, js.Version)
	assert.Equal(t, "object", js.Type)
	assert.Equal(t, []string{"z", "a", "m"}, propertyNames(js))
	assert.Equal(t, []string{"z", "a", "m"}, js.Required)

	a, ok := js.Properties.Get("a")
	require.True(t, ok)
	assert.Equal(t, "integer", a.Type)
	assert.Equal(t, "int64", a.Format)
}

func TestConvertNulls(t *testing.T) {
	f := schema.NewField("n", schema.NewPrimitive(schema.Boolean))
	f.Nullable = true
	js := convertSchema(t, schema.NewStruct(
		f,
		schema.NewField("xs", schema.NewArray(schema.NewPrimitive(schema.Integer), true)),
	))

	n, _ := js.Properties.Get("n")
	require.Len(t, n.AnyOf, 2)
	assert.Equal(t, "boolean", n.AnyOf[0].Type)
	assert.Equal(t, "null", n.AnyOf[1].Type)

	xs, _ := js.Properties.Get("xs")
	assert.Equal(t, "array", xs.Type)
	require.Len(t, xs.Items.AnyOf, 2)
	assert.Equal(t, "int32", xs.Items.AnyOf[0].Format)
}

func TestRender(t *testing.T) {
	n, err := New().Convert(schema.NewArray(schema.NewStruct(
		schema.NewField("b", schema.NewPrimitive(schema.String)),
		schema.NewField("a", schema.NewPrimitive(schema.Integer)),
	), false))
	require.NoError(t, err)
	bs, err := n.Render()
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"b": {"type": "string"},
				"a": {"type": "integer", "format": "int32"}
			},
			"required": ["b", "a"]
		}
	}`, string(bs))
	assert.Less(t, strings.Index(string(bs), `"b"`), strings.Index(string(bs), `"a"`))
}

func TestConvertErrors(t *testing.T) {
	_, err := New().Convert(schema.NewPrimitive(schema.Long))
	assert.ErrorIs(t, err, schema.ErrInvalidRoot)

	_, err = New().Convert(schema.NewStruct(schema.NewField("x", nil)))
	assert.ErrorIs(t, err, adapter.ErrConversion)
	assert.ErrorContains(t, err, "missing type")
}
