// Package jsonschema converts canonical schemas into JSON Schema (draft
// 2020-12) documents with properties in field order.
package jsonschema

import (
	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
)

const Name = "jsonschema"

// MetadataKeyword carries field metadata, when there is any.
const MetadataKeyword = "x-metadata"

type Adapter struct{}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string    { return Name }
func (Adapter) FileExt() string { return ".schema.json" }

type Native struct {
	Schema *jsonschema.Schema
}

func (n *Native) Render() ([]byte, error) {
	return json.MarshalIndent(n.Schema, "", "  ")
}

func (Adapter) Convert(s schema.Schema) (adapter.Native, error) {
	if _, err := adapter.Root(Name, s); err != nil {
		return nil, err
	}
	js, err := convert(s, "$")
	if err != nil {
		return nil, err
	}
	js.Version = jsonschema.Version
	return &Native{Schema: js}, nil
}

func convert(s schema.Schema, path string) (*jsonschema.Schema, error) {
	if s == nil {
		return nil, adapter.Errorf(Name, path, "missing type")
	}
	switch s.Kind() {
	case schema.KindStruct:
		return convertObject(s.AsStruct(), path)
	case schema.KindArray:
		a := s.AsArray()
		item, err := convert(a.Element, adapter.ElementPath(path))
		if err != nil {
			return nil, err
		}
		if a.ContainsNull {
			item = orNull(item)
		}
		return &jsonschema.Schema{Type: "array", Items: item}, nil
	case schema.KindPrimitive:
		return primitive(s.AsPrimitive().Name, path)
	}
	return nil, adapter.Errorf(Name, path, "unknown schema kind %s", s.Kind())
}

func convertObject(s *schema.StructSchema, path string) (*jsonschema.Schema, error) {
	js := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
		Required:   make([]string, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		v, err := convert(f.Type, adapter.FieldPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		if f.Nullable {
			v = orNull(v)
		}
		if len(f.Metadata) > 0 {
			v.Extras = map[string]any{MetadataKeyword: f.Metadata}
		}
		js.Properties.Set(f.Name, v)
		js.Required = append(js.Required, f.Name)
	}
	return js, nil
}

func orNull(s *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
}

func primitive(name schema.PrimitiveName, path string) (*jsonschema.Schema, error) {
	switch name {
	case schema.String:
		return &jsonschema.Schema{Type: "string"}, nil
	case schema.Integer:
		return &jsonschema.Schema{Type: "integer", Format: "int32"}, nil
	case schema.Long:
		return &jsonschema.Schema{Type: "integer", Format: "int64"}, nil
	case schema.Double:
		return &jsonschema.Schema{Type: "number", Format: "double"}, nil
	case schema.Boolean:
		return &jsonschema.Schema{Type: "boolean"}, nil
	}
	return nil, adapter.Errorf(Name, path, "unsupported type %q", name)
}
