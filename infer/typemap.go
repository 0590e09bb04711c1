package infer

import (
	"math"
	"strconv"

	"github.com/siegeai/siegeschema/schema"
	"github.com/valyala/fastjson"
)

// MaxInteger is the largest magnitude classified as integer; anything wider is
// long.
const MaxInteger = math.MaxInt32

// valueShape is the closed set of JSON value shapes inference dispatches on.
// fastjson only knows "number", so numbers are split by their literal.
type valueShape int

const (
	shapeNull valueShape = iota
	shapeObject
	shapeArray
	shapeString
	shapeInteger
	shapeDouble
	shapeBoolean
)

func shapeOf(v *fastjson.Value) valueShape {
	if v == nil {
		return shapeNull
	}
	switch v.Type() {
	case fastjson.TypeObject:
		return shapeObject
	case fastjson.TypeArray:
		return shapeArray
	case fastjson.TypeString:
		return shapeString
	case fastjson.TypeNumber:
		if isIntegerLiteral(v.MarshalTo(nil)) {
			return shapeInteger
		}
		return shapeDouble
	case fastjson.TypeTrue, fastjson.TypeFalse:
		return shapeBoolean
	case fastjson.TypeNull:
		return shapeNull
	}

	panic("should be unreachable")
}

// isIntegerLiteral reports whether lit has no fraction or exponent, which is
// how a JSON decoder tells an int from a float.
func isIntegerLiteral(lit []byte) bool {
	if len(lit) > 0 && lit[0] == '-' {
		lit = lit[1:]
	}
	if len(lit) == 0 {
		return false
	}
	for _, c := range lit {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Classify maps a scalar JSON value to its primitive type name. Values it has
// no mapping for, null included, are strings. It never fails.
func Classify(v *fastjson.Value) schema.PrimitiveName {
	switch shapeOf(v) {
	case shapeString:
		return schema.String
	case shapeBoolean:
		return schema.Boolean
	case shapeDouble:
		return schema.Double
	case shapeInteger:
		return classifyInteger(v.MarshalTo(nil))
	default:
		return schema.String
	}
}

func classifyInteger(lit []byte) schema.PrimitiveName {
	n, err := strconv.ParseInt(string(lit), 10, 64)
	if err != nil {
		// only a range error gets here, the literal is already known to be digits
		return schema.Long
	}
	if n > MaxInteger || n < -MaxInteger {
		return schema.Long
	}
	return schema.Integer
}
