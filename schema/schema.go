// Package schema holds the canonical, engine-neutral schema model: structs,
// arrays and primitives, plus their JSON and YAML encodings.
package schema

type SchemaKind int

const (
	KindStruct    SchemaKind = 1
	KindArray     SchemaKind = 2
	KindPrimitive SchemaKind = 3
)

func (k SchemaKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindPrimitive:
		return "primitive"
	}
	return "unknown"
}

// Schema is a node of the canonical schema tree. The set of implementations
// is closed: *StructSchema, *ArraySchema and *PrimitiveSchema.
type Schema interface {
	Kind() SchemaKind
	AsStruct() *StructSchema
	AsArray() *ArraySchema
	AsPrimitive() *PrimitiveSchema
}

// ReservedFieldName is the one key whose field is serialized without a name,
// because it collides with the "fields" member of the struct encoding.
const ReservedFieldName = "fields"

type StructSchema struct {
	Fields []StructField
}

type StructField struct {
	Name     string
	Type     Schema
	Nullable bool
	Metadata map[string]string
}

// Named reports whether the field carries a "name" member when encoded.
func (f StructField) Named() bool {
	return f.Name != ReservedFieldName
}

func (s *StructSchema) Kind() SchemaKind {
	return KindStruct
}

func (s *StructSchema) AsStruct() *StructSchema {
	return s
}

func (s *StructSchema) AsArray() *ArraySchema {
	panic("struct is not an array")
}

func (s *StructSchema) AsPrimitive() *PrimitiveSchema {
	panic("struct is not a primitive")
}

type ArraySchema struct {
	Element      Schema
	ContainsNull bool
}

func (a *ArraySchema) Kind() SchemaKind {
	return KindArray
}

func (a *ArraySchema) AsStruct() *StructSchema {
	panic("array is not a struct")
}

func (a *ArraySchema) AsArray() *ArraySchema {
	return a
}

func (a *ArraySchema) AsPrimitive() *PrimitiveSchema {
	panic("array is not a primitive")
}

type PrimitiveName string

const (
	String  PrimitiveName = "string"
	Integer PrimitiveName = "integer"
	Long    PrimitiveName = "long"
	Double  PrimitiveName = "double"
	Boolean PrimitiveName = "boolean"
)

// Valid reports whether n is one of the five canonical primitive names.
func (n PrimitiveName) Valid() bool {
	switch n {
	case String, Integer, Long, Double, Boolean:
		return true
	}
	return false
}

type PrimitiveSchema struct {
	Name PrimitiveName
}

func (p *PrimitiveSchema) Kind() SchemaKind {
	return KindPrimitive
}

func (p *PrimitiveSchema) AsStruct() *StructSchema {
	panic("primitive is not a struct")
}

func (p *PrimitiveSchema) AsArray() *ArraySchema {
	panic("primitive is not an array")
}

func (p *PrimitiveSchema) AsPrimitive() *PrimitiveSchema {
	return p
}

func NewPrimitive(name PrimitiveName) *PrimitiveSchema {
	return &PrimitiveSchema{Name: name}
}

func NewArray(element Schema, containsNull bool) *ArraySchema {
	return &ArraySchema{Element: element, ContainsNull: containsNull}
}

func NewStruct(fields ...StructField) *StructSchema {
	if fields == nil {
		fields = make([]StructField, 0)
	}
	return &StructSchema{Fields: fields}
}

// NewField returns a field the way inference emits it: not nullable, no
// metadata.
func NewField(name string, t Schema) StructField {
	return StructField{
		Name:     name,
		Type:     t,
		Nullable: false,
		Metadata: map[string]string{},
	}
}

// DefaultArray is the schema used for an array with no elements to vote on.
func DefaultArray() *ArraySchema {
	return NewArray(NewPrimitive(String), true)
}

// RootKind reports whether s can stand at the top of a schema document, i.e.
// whether it is a struct or an array.
func RootKind(s Schema) (SchemaKind, error) {
	if s == nil {
		return 0, &InvalidRootError{Shape: "nil"}
	}
	switch k := s.Kind(); k {
	case KindStruct, KindArray:
		return k, nil
	default:
		return 0, &InvalidRootError{Shape: k.String()}
	}
}
