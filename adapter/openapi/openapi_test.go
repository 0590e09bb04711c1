package openapi

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertSchema(t *testing.T, s schema.Schema) *openapi3.Schema {
	t.Helper()
	n, err := New().Convert(s)
	require.NoError(t, err)
	return n.(*Native).Schema
}

func TestConvertStruct(t *testing.T) {
	o := convertSchema(t, schema.NewStruct(
		schema.NewField("b", schema.NewPrimitive(schema.Long)),
		schema.NewField("a", schema.NewPrimitive(schema.Integer)),
		schema.NewField("c", schema.NewArray(schema.NewPrimitive(schema.Double), true)),
		schema.NewField("d", schema.NewStruct(schema.NewField("e", schema.NewPrimitive(schema.Boolean)))),
	))

	assert.Equal(t, openapi3.TypeObject, o.Type)
	assert.Equal(t, []string{"b", "a", "c", "d"}, o.Required)

	b := o.Properties["b"].Value
	assert.Equal(t, openapi3.TypeInteger, b.Type)
	assert.Equal(t, "int64", b.Format)
	assert.Equal(t, "int32", o.Properties["a"].Value.Format)

	c := o.Properties["c"].Value
	assert.Equal(t, openapi3.TypeArray, c.Type)
	assert.Equal(t, openapi3.TypeNumber, c.Items.Value.Type)
	assert.Equal(t, "double", c.Items.Value.Format)
	assert.True(t, c.Items.Value.Nullable)

	d := o.Properties["d"].Value
	assert.Equal(t, []string{"e"}, d.Required)
	assert.Equal(t, openapi3.TypeBoolean, d.Properties["e"].Value.Type)

	require.NoError(t, o.Validate(context.Background()))
}

func TestConvertFieldAttributes(t *testing.T) {
	f := schema.NewField("fields", schema.NewPrimitive(schema.String))
	f.Nullable = true
	f.Metadata = map[string]string{"source": "raw"}
	o := convertSchema(t, schema.NewStruct(f))

	v := o.Properties["fields"].Value
	assert.True(t, v.Nullable)
	assert.Equal(t, map[string]string{"source": "raw"}, v.Extensions[MetadataExtension])
}

func TestConvertArrayRoot(t *testing.T) {
	o := convertSchema(t, schema.DefaultArray())
	assert.Equal(t, openapi3.TypeArray, o.Type)
	assert.Equal(t, openapi3.TypeString, o.Items.Value.Type)
	assert.True(t, o.Items.Value.Nullable)
}

func TestRender(t *testing.T) {
	n, err := New().Convert(schema.NewStruct(schema.NewField("a", schema.NewPrimitive(schema.Integer))))
	require.NoError(t, err)
	bs, err := n.Render()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"object","required":["a"],"properties":{"a":{"type":"integer","format":"int32"}}}`,
		string(bs))
}

func TestConvertErrors(t *testing.T) {
	_, err := New().Convert(schema.NewPrimitive(schema.Boolean))
	assert.ErrorIs(t, err, schema.ErrInvalidRoot)

	_, err = New().Convert(schema.NewArray(schema.NewPrimitive("decimal"), false))
	assert.ErrorIs(t, err, adapter.ErrConversion)
}
