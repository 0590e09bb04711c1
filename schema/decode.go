package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/valyala/fastjson"
)

//go:embed canonical.schema.json
var canonicalSchemaJSON []byte

const canonicalSchemaURL = "canonical.schema.json"

var canonicalValidator = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(canonicalSchemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(canonicalSchemaURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(canonicalSchemaURL)
})

// Validate checks that b is a canonical schema document.
func Validate(b []byte) error {
	v, err := canonicalValidator()
	if err != nil {
		return fmt.Errorf("compile canonical schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := v.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return nil
}

// Parse decodes a canonical schema document. Fields keep their order. A field
// without a name is the reserved "fields" field.
func Parse(b []byte) (Schema, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return parseNode(v)
}

func parseNode(v *fastjson.Value) (Schema, error) {
	switch v.Type() {
	case fastjson.TypeString:
		name := PrimitiveName(v.GetStringBytes())
		if !name.Valid() {
			return nil, fmt.Errorf("%w: unknown primitive %q", ErrInvalidSchema, name)
		}
		return NewPrimitive(name), nil
	case fastjson.TypeObject:
		switch t := string(v.GetStringBytes("type")); t {
		case "struct":
			return parseStruct(v.GetArray("fields"))
		case "array":
			return parseArray(v)
		default:
			return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidSchema, t)
		}
	}
	return nil, fmt.Errorf("%w: unexpected %s node", ErrInvalidSchema, v.Type())
}

func parseStruct(vs []*fastjson.Value) (Schema, error) {
	fields := make([]StructField, 0, len(vs))
	for _, fv := range vs {
		t := fv.Get("type")
		if t == nil {
			return nil, fmt.Errorf("%w: field without type", ErrInvalidSchema)
		}
		child, err := parseNode(t)
		if err != nil {
			return nil, err
		}

		f := StructField{
			Name:     ReservedFieldName,
			Type:     child,
			Nullable: fv.GetBool("nullable"),
			Metadata: map[string]string{},
		}
		if fv.Exists("name") {
			f.Name = string(fv.GetStringBytes("name"))
		}
		if md := fv.GetObject("metadata"); md != nil {
			md.Visit(func(key []byte, mv *fastjson.Value) {
				f.Metadata[string(key)] = string(mv.GetStringBytes())
			})
		}
		fields = append(fields, f)
	}
	return NewStruct(fields...), nil
}

func parseArray(v *fastjson.Value) (Schema, error) {
	et := v.Get("elementType")
	if et == nil {
		return nil, fmt.Errorf("%w: array without elementType", ErrInvalidSchema)
	}
	elem, err := parseNode(et)
	if err != nil {
		return nil, err
	}
	return NewArray(elem, v.GetBool("containsNull")), nil
}
