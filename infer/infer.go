// Package infer derives a canonical schema from a JSON document.
//
// Objects become structs with fields in key order, scalars are classified into
// primitive names, and arrays are reduced to a single element schema by
// majority vote over their elements. Inference is pure: it keeps no state
// between calls and is safe to run concurrently.
package infer

import (
	"errors"
	"fmt"

	"github.com/siegeai/siegeschema/schema"
	"github.com/valyala/fastjson"
)

var (
	ErrParse = errors.New("document is not valid JSON")
)

// Inferrer infers the schema of one raw JSON document. Engine implements it,
// and wrappers such as WithLogging decorate it.
type Inferrer interface {
	InferBytes(b []byte) (schema.Schema, error)
}

type Engine struct {
	parsers fastjson.ParserPool
}

var _ Inferrer = (*Engine)(nil)

func NewEngine() *Engine {
	return &Engine{}
}

// Infer returns the schema of an already parsed document.
func (e *Engine) Infer(v *fastjson.Value) (schema.Schema, error) {
	return Infer(v)
}

// InferBytes parses b and infers its schema. The returned schema does not
// reference parser memory.
func (e *Engine) InferBytes(b []byte) (schema.Schema, error) {
	p := e.parsers.Get()
	defer e.parsers.Put(p)

	v, err := p.ParseBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return Infer(v)
}

// Infer returns a struct schema for an object and an array schema for an
// array. Any other root fails with *schema.InvalidRootError.
func Infer(v *fastjson.Value) (schema.Schema, error) {
	if v == nil {
		return nil, &schema.InvalidRootError{Shape: "nil"}
	}
	switch shapeOf(v) {
	case shapeObject:
		o, _ := v.Object()
		return BuildStruct(o), nil
	case shapeArray:
		return MergeArray(v.GetArray()), nil
	}
	return nil, &schema.InvalidRootError{Shape: v.Type().String()}
}

// RootKind reports whether s is a struct or an array schema, so a consumer can
// choose how to convert it.
func RootKind(s schema.Schema) (schema.SchemaKind, error) {
	return schema.RootKind(s)
}
