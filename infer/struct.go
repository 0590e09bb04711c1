package infer

import (
	"github.com/siegeai/siegeschema/schema"
	"github.com/valyala/fastjson"
)

// BuildStruct turns a JSON object into a struct schema with one field per key,
// in the order keys first appear. Keys holding an empty array get no field.
// A repeated key keeps its first position and its last value.
func BuildStruct(o *fastjson.Object) *schema.StructSchema {
	if o == nil {
		return schema.NewStruct()
	}

	keys := make([]string, 0, o.Len())
	values := make(map[string]*fastjson.Value, o.Len())
	o.Visit(func(key []byte, v *fastjson.Value) {
		k := string(key)
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = v
	})

	fields := make([]schema.StructField, 0, len(keys))
	for _, k := range keys {
		if f, ok := buildField(k, values[k]); ok {
			fields = append(fields, f)
		}
	}
	return schema.NewStruct(fields...)
}

func buildField(name string, v *fastjson.Value) (schema.StructField, bool) {
	var t schema.Schema
	switch shapeOf(v) {
	case shapeObject:
		o, _ := v.Object()
		t = BuildStruct(o)
	case shapeArray:
		a, ok := mergeArray(v.GetArray())
		if !ok {
			return schema.StructField{}, false
		}
		t = a
	default:
		t = schema.NewPrimitive(Classify(v))
	}
	return schema.NewField(name, t), true
}
