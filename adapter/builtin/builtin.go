// Package builtin registers every native adapter shipped with siegeschema.
package builtin

import (
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/adapter/arrow"
	"github.com/siegeai/siegeschema/adapter/jsonschema"
	"github.com/siegeai/siegeschema/adapter/openapi"
	"github.com/siegeai/siegeschema/adapter/spark"
)

func Adapters() []adapter.Adapter {
	return []adapter.Adapter{
		spark.New(),
		arrow.New(),
		openapi.New(),
		jsonschema.New(),
	}
}

// Registry returns a registry holding the built-in adapters.
func Registry() *adapter.Registry {
	r, err := adapter.NewRegistry(Adapters()...)
	if err != nil {
		panic(err)
	}
	return r
}
