// Package openapi converts canonical schemas into OpenAPI 3 schema objects.
package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
)

const Name = "openapi"

// MetadataExtension carries field metadata, when there is any.
const MetadataExtension = "x-metadata"

type Adapter struct{}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string    { return Name }
func (Adapter) FileExt() string { return ".openapi.json" }

type Native struct {
	Schema *openapi3.Schema
}

func (n *Native) Render() ([]byte, error) {
	return json.MarshalIndent(n.Schema, "", "  ")
}

func (Adapter) Convert(s schema.Schema) (adapter.Native, error) {
	if _, err := adapter.Root(Name, s); err != nil {
		return nil, err
	}
	o, err := convert(s, "$")
	if err != nil {
		return nil, err
	}
	return &Native{Schema: o}, nil
}

func convert(s schema.Schema, path string) (*openapi3.Schema, error) {
	if s == nil {
		return nil, adapter.Errorf(Name, path, "missing type")
	}
	switch s.Kind() {
	case schema.KindStruct:
		return newObjectSchema(s.AsStruct(), path)
	case schema.KindArray:
		return newArraySchema(s.AsArray(), path)
	case schema.KindPrimitive:
		return newPrimitiveSchema(s.AsPrimitive().Name, path)
	}
	return nil, adapter.Errorf(Name, path, "unknown schema kind %s", s.Kind())
}

func newObjectSchema(s *schema.StructSchema, path string) (*openapi3.Schema, error) {
	ps := make(openapi3.Schemas, len(s.Fields))
	rs := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		v, err := convert(f.Type, adapter.FieldPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		v.Nullable = f.Nullable
		if len(f.Metadata) > 0 {
			v.Extensions = map[string]any{MetadataExtension: f.Metadata}
		}
		ps[f.Name] = v.NewRef()
		rs = append(rs, f.Name)
	}
	return &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Required:   rs,
		Properties: ps,
	}, nil
}

func newArraySchema(a *schema.ArraySchema, path string) (*openapi3.Schema, error) {
	item, err := convert(a.Element, adapter.ElementPath(path))
	if err != nil {
		return nil, err
	}
	item.Nullable = a.ContainsNull
	return &openapi3.Schema{
		Type:  openapi3.TypeArray,
		Items: item.NewRef(),
	}, nil
}

func newPrimitiveSchema(name schema.PrimitiveName, path string) (*openapi3.Schema, error) {
	switch name {
	case schema.String:
		return &openapi3.Schema{Type: openapi3.TypeString}, nil
	case schema.Integer:
		return &openapi3.Schema{Type: openapi3.TypeInteger, Format: "int32"}, nil
	case schema.Long:
		return &openapi3.Schema{Type: openapi3.TypeInteger, Format: "int64"}, nil
	case schema.Double:
		return &openapi3.Schema{Type: openapi3.TypeNumber, Format: "double"}, nil
	case schema.Boolean:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}, nil
	}
	return nil, adapter.Errorf(Name, path, "unsupported type %q", name)
}
