// Package spark converts canonical schemas into Spark SQL style data types.
package spark

import (
	"fmt"
	"strings"
)

// DataType mirrors the Spark SQL type hierarchy.
type DataType interface {
	// TypeName is the name used by printSchema and the JSON encoding.
	TypeName() string
	// SimpleString is the compact DDL-like form, e.g. array<bigint>.
	SimpleString() string
}

type AtomicType struct {
	name   string
	simple string
}

func (t AtomicType) TypeName() string     { return t.name }
func (t AtomicType) SimpleString() string { return t.simple }

var (
	StringType  = AtomicType{name: "string", simple: "string"}
	IntegerType = AtomicType{name: "integer", simple: "int"}
	LongType    = AtomicType{name: "long", simple: "bigint"}
	DoubleType  = AtomicType{name: "double", simple: "double"}
	BooleanType = AtomicType{name: "boolean", simple: "boolean"}
)

type StructField struct {
	Name     string
	DataType DataType
	Nullable bool
	Metadata map[string]string
}

type StructType struct {
	Fields []StructField
}

func (t *StructType) TypeName() string { return "struct" }

func (t *StructType) SimpleString() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = f.Name + ":" + f.DataType.SimpleString()
	}
	return "struct<" + strings.Join(parts, ",") + ">"
}

// FieldNames returns the field names in declaration order.
func (t *StructType) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

type ArrayType struct {
	ElementType  DataType
	ContainsNull bool
}

func (t *ArrayType) TypeName() string { return "array" }

func (t *ArrayType) SimpleString() string {
	return "array<" + t.ElementType.SimpleString() + ">"
}

// TreeString renders t the way printSchema does.
func TreeString(t DataType) string {
	var b strings.Builder
	b.WriteString("root\n")
	writeTree(&b, " |", t)
	return b.String()
}

func writeTree(b *strings.Builder, prefix string, t DataType) {
	switch t := t.(type) {
	case *StructType:
		for _, f := range t.Fields {
			fmt.Fprintf(b, "%s-- %s: %s (nullable = %t)\n", prefix, f.Name, f.DataType.TypeName(), f.Nullable)
			writeTree(b, prefix+"    |", f.DataType)
		}
	case *ArrayType:
		fmt.Fprintf(b, "%s-- element: %s (containsNull = %t)\n", prefix, t.ElementType.TypeName(), t.ContainsNull)
		writeTree(b, prefix+"    |", t.ElementType)
	}
}
