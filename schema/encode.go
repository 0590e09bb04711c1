package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

type structJSON struct {
	Type   string      `json:"type"`
	Fields []fieldJSON `json:"fields"`
}

type fieldJSON struct {
	Name     *string           `json:"name,omitempty"`
	Type     Schema            `json:"type"`
	Nullable bool              `json:"nullable"`
	Metadata map[string]string `json:"metadata"`
}

type arrayJSON struct {
	Type         string `json:"type"`
	ElementType  Schema `json:"elementType"`
	ContainsNull bool   `json:"containsNull"`
}

func (s *StructSchema) MarshalJSON() ([]byte, error) {
	fields := make([]fieldJSON, len(s.Fields))
	for i, f := range s.Fields {
		if f.Type == nil {
			return nil, fmt.Errorf("field %q has no type", f.Name)
		}
		fields[i] = fieldJSON{
			Type:     f.Type,
			Nullable: f.Nullable,
			Metadata: f.Metadata,
		}
		if f.Named() {
			name := f.Name
			fields[i].Name = &name
		}
		if fields[i].Metadata == nil {
			fields[i].Metadata = map[string]string{}
		}
	}
	return json.Marshal(structJSON{Type: "struct", Fields: fields})
}

func (a *ArraySchema) MarshalJSON() ([]byte, error) {
	if a.Element == nil {
		return nil, fmt.Errorf("array has no element type")
	}
	return json.Marshal(arrayJSON{Type: "array", ElementType: a.Element, ContainsNull: a.ContainsNull})
}

func (p *PrimitiveSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p.Name))
}

// Marshal encodes s in the canonical JSON shape. Equal trees always produce
// equal bytes, which is what array element voting relies on.
func Marshal(s Schema) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal nil schema")
	}
	return json.Marshal(s)
}

func MarshalIndent(s Schema, indent string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal nil schema")
	}
	return json.MarshalIndent(s, "", indent)
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Schema) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindPrimitive:
		return a.AsPrimitive().Name == b.AsPrimitive().Name
	case KindArray:
		x, y := a.AsArray(), b.AsArray()
		return x.ContainsNull == y.ContainsNull && Equal(x.Element, y.Element)
	case KindStruct:
		x, y := a.AsStruct(), b.AsStruct()
		if len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !equalField(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func equalField(a, b StructField) bool {
	if a.Name != b.Name || a.Nullable != b.Nullable || len(a.Metadata) != len(b.Metadata) {
		return false
	}
	for k, v := range a.Metadata {
		if w, ok := b.Metadata[k]; !ok || w != v {
			return false
		}
	}
	return Equal(a.Type, b.Type)
}
