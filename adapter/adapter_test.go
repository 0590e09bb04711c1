package adapter

import (
	"errors"
	"testing"

	"github.com/siegeai/siegeschema/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rendered string

func (r rendered) Render() ([]byte, error) {
	if r == "" {
		return nil, errors.New("nothing to render")
	}
	return []byte(r), nil
}

// kindAdapter renders the root kind of what it converts.
type kindAdapter struct {
	name string
}

func (a kindAdapter) Name() string    { return a.name }
func (a kindAdapter) FileExt() string { return ".txt" }

func (a kindAdapter) Convert(s schema.Schema) (Native, error) {
	k, err := Root(a.name, s)
	if err != nil {
		return nil, err
	}
	if k == schema.KindArray && s.AsArray().Element == nil {
		return rendered(""), nil
	}
	return rendered(k.String()), nil
}

func TestConversionError(t *testing.T) {
	err := Errorf("spark", "$.a[]", "unsupported type %q", "date")
	assert.EqualError(t, err, `spark: $.a[]: unsupported type "date"`)
	assert.ErrorIs(t, err, ErrConversion)

	var ce *ConversionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "$.a[]", ce.Path)
}

func TestRootRejectsPrimitives(t *testing.T) {
	k, err := Root("x", schema.NewStruct())
	require.NoError(t, err)
	assert.Equal(t, schema.KindStruct, k)

	_, err = Root("x", schema.NewPrimitive(schema.String))
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, schema.ErrInvalidRoot)

	var ie *schema.InvalidRootError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "primitive", ie.Shape)
}

func TestConvertJSON(t *testing.T) {
	n, err := ConvertJSON(kindAdapter{"k"}, []byte(`{"type":"array","elementType":"long","containsNull":false}`))
	require.NoError(t, err)
	bs, err := n.Render()
	require.NoError(t, err)
	assert.Equal(t, "array", string(bs))

	_, err = ConvertJSON(kindAdapter{"k"}, []byte(`{"type":"map"}`))
	assert.ErrorIs(t, err, ErrConversion)
	assert.ErrorIs(t, err, schema.ErrInvalidSchema)

	_, err = ConvertJSON(kindAdapter{"k"}, []byte(`"string"`))
	assert.ErrorIs(t, err, schema.ErrInvalidRoot)
}

func TestRender(t *testing.T) {
	bs, err := Render(kindAdapter{"k"}, schema.NewStruct())
	require.NoError(t, err)
	assert.Equal(t, "struct", string(bs))

	_, err = Render(kindAdapter{"k"}, schema.NewArray(nil, false))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(kindAdapter{"b"}, kindAdapter{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	a, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name())

	_, err = r.Lookup("c")
	assert.ErrorIs(t, err, ErrUnknownAdapter)

	assert.ErrorIs(t, r.Register(kindAdapter{"a"}), ErrDuplicate)
	_, err = NewRegistry(kindAdapter{"a"}, kindAdapter{"a"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
