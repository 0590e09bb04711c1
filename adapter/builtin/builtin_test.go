package builtin

import (
	"testing"

	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/infer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"arrow", "jsonschema", "openapi", "spark"}, Registry().Names())
}

func TestEveryAdapterConvertsInferredSchemas(t *testing.T) {
	docs := []string{
		`{"id": 4294967296, "name": "x", "score": 1.5, "ok": true, "tags": ["a", null], "fields": {"n": 1}}`,
		`[{"a": [[1], [2]]}, {"a": [[3]]}]`,
		`[]`,
	}
	for _, a := range Adapters() {
		for _, doc := range docs {
			s, err := infer.NewEngine().InferBytes([]byte(doc))
			require.NoError(t, err)

			bs, err := adapter.Render(a, s)
			require.NoError(t, err, "%s: %s", a.Name(), doc)
			assert.NotEmpty(t, bs)
		}
	}
}
