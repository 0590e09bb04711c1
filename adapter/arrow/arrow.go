// Package arrow converts canonical schemas into Apache Arrow schemas.
package arrow

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
)

const Name = "arrow"

// ListElementName is the child field name of converted list types.
const ListElementName = "item"

type Adapter struct{}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string    { return Name }
func (Adapter) FileExt() string { return ".txt" }

// Native holds a struct root as Schema, or an array root as List.
type Native struct {
	Schema *arrow.Schema
	List   *arrow.ListType
}

func (n *Native) Render() ([]byte, error) {
	if n.Schema != nil {
		return []byte(n.Schema.String() + "\n"), nil
	}
	return []byte(n.List.String() + "\n"), nil
}

func (Adapter) Convert(s schema.Schema) (adapter.Native, error) {
	k, err := adapter.Root(Name, s)
	if err != nil {
		return nil, err
	}
	if k == schema.KindStruct {
		fields, err := convertFields(s.AsStruct(), "$")
		if err != nil {
			return nil, err
		}
		return &Native{Schema: arrow.NewSchema(fields, nil)}, nil
	}
	l, err := convertList(s.AsArray(), "$")
	if err != nil {
		return nil, err
	}
	return &Native{List: l}, nil
}

func convert(s schema.Schema, path string) (arrow.DataType, error) {
	if s == nil {
		return nil, adapter.Errorf(Name, path, "missing type")
	}
	switch s.Kind() {
	case schema.KindStruct:
		fields, err := convertFields(s.AsStruct(), path)
		if err != nil {
			return nil, err
		}
		return arrow.StructOf(fields...), nil
	case schema.KindArray:
		return convertList(s.AsArray(), path)
	case schema.KindPrimitive:
		return primitive(s.AsPrimitive().Name, path)
	}
	return nil, adapter.Errorf(Name, path, "unknown schema kind %s", s.Kind())
}

func convertFields(s *schema.StructSchema, path string) ([]arrow.Field, error) {
	fields := make([]arrow.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		t, err := convert(f.Type, adapter.FieldPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		af := arrow.Field{Name: f.Name, Type: t, Nullable: f.Nullable}
		if len(f.Metadata) > 0 {
			af.Metadata = arrow.MetadataFrom(f.Metadata)
		}
		fields = append(fields, af)
	}
	return fields, nil
}

func convertList(a *schema.ArraySchema, path string) (*arrow.ListType, error) {
	elem, err := convert(a.Element, adapter.ElementPath(path))
	if err != nil {
		return nil, err
	}
	return arrow.ListOfField(arrow.Field{
		Name:     ListElementName,
		Type:     elem,
		Nullable: a.ContainsNull,
	}), nil
}

func primitive(name schema.PrimitiveName, path string) (arrow.DataType, error) {
	switch name {
	case schema.String:
		return arrow.BinaryTypes.String, nil
	case schema.Integer:
		return arrow.PrimitiveTypes.Int32, nil
	case schema.Long:
		return arrow.PrimitiveTypes.Int64, nil
	case schema.Double:
		return arrow.PrimitiveTypes.Float64, nil
	case schema.Boolean:
		return arrow.FixedWidthTypes.Boolean, nil
	}
	return nil, adapter.Errorf(Name, path, "unsupported type %q", name)
}
