package spark

import (
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/schema"
)

const Name = "spark"

type Adapter struct{}

func New() Adapter {
	return Adapter{}
}

func (Adapter) Name() string    { return Name }
func (Adapter) FileExt() string { return ".txt" }

// Native is a converted root: a *StructType or an *ArrayType.
type Native struct {
	Type DataType
}

// Render returns the printSchema tree.
func (n *Native) Render() ([]byte, error) {
	return []byte(TreeString(n.Type)), nil
}

func (a Adapter) Convert(s schema.Schema) (adapter.Native, error) {
	t, err := a.ConvertType(s)
	if err != nil {
		return nil, err
	}
	return &Native{Type: t}, nil
}

// ConvertType converts a struct or array root into its Spark data type.
func (Adapter) ConvertType(s schema.Schema) (DataType, error) {
	if _, err := adapter.Root(Name, s); err != nil {
		return nil, err
	}
	return convert(s, "$")
}

func convert(s schema.Schema, path string) (DataType, error) {
	if s == nil {
		return nil, adapter.Errorf(Name, path, "missing type")
	}
	switch s.Kind() {
	case schema.KindStruct:
		return convertStruct(s.AsStruct(), path)
	case schema.KindArray:
		a := s.AsArray()
		elem, err := convert(a.Element, adapter.ElementPath(path))
		if err != nil {
			return nil, err
		}
		return &ArrayType{ElementType: elem, ContainsNull: a.ContainsNull}, nil
	case schema.KindPrimitive:
		return atomic(s.AsPrimitive().Name, path)
	}
	return nil, adapter.Errorf(Name, path, "unknown schema kind %s", s.Kind())
}

func convertStruct(s *schema.StructSchema, path string) (*StructType, error) {
	fields := make([]StructField, 0, len(s.Fields))
	for _, f := range s.Fields {
		t, err := convert(f.Type, adapter.FieldPath(path, f.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, StructField{
			Name:     f.Name,
			DataType: t,
			Nullable: f.Nullable,
			Metadata: f.Metadata,
		})
	}
	return &StructType{Fields: fields}, nil
}

func atomic(name schema.PrimitiveName, path string) (DataType, error) {
	switch name {
	case schema.String:
		return StringType, nil
	case schema.Integer:
		return IntegerType, nil
	case schema.Long:
		return LongType, nil
	case schema.Double:
		return DoubleType, nil
	case schema.Boolean:
		return BooleanType, nil
	}
	return nil, adapter.Errorf(Name, path, "unsupported type %q", name)
}
