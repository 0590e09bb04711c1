package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func depth(v *fastjson.Value) int {
	d := 0
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		o.Visit(func(_ []byte, c *fastjson.Value) {
			d = max(d, depth(c))
		})
		return d + 1
	case fastjson.TypeArray:
		for _, c := range v.GetArray() {
			d = max(d, depth(c))
		}
		return d + 1
	}
	return 0
}

func TestGeneratorProducesValidJSON(t *testing.T) {
	g := New(1)
	for i := 0; i < 200; i++ {
		v, err := fastjson.ParseBytes(g.Object())
		require.NoError(t, err)
		assert.Equal(t, fastjson.TypeObject, v.Type())
		assert.LessOrEqual(t, depth(v), g.MaxDepth)

		v, err = fastjson.ParseBytes(g.Array())
		require.NoError(t, err)
		assert.Equal(t, fastjson.TypeArray, v.Type())
	}
}

func TestGeneratorIsSeeded(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 20; i++ {
		assert.Equal(t, string(a.Object()), string(b.Object()))
	}
}
