// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema describes function parameters declaratively and
// interprets those descriptions generically: validation with defaulting,
// structural description for introspection, and JSON Schema rendering.
// Every registered function shares this one interpreter instead of
// hand-written per-function checks.
package schema

// Kind is the primitive type of a parameter.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindEnum    Kind = "enum"
	KindObject  Kind = "object"
)

// Field declares one parameter. A field is required unless it is marked
// optional or carries a default.
type Field struct {
	Name        string
	Kind        Kind
	Description string

	// Optional marks a field that may be omitted without a default.
	Optional bool

	// Default is applied when the field is omitted or null.
	Default any

	// Enum lists the accepted values of a KindEnum field.
	Enum []string

	// Items describes the elements of a KindArray field.
	Items *Field

	// Fields describes the members of a KindObject field.
	Fields []Field

	// Minimum bounds KindNumber and KindInteger values from below.
	Minimum *float64
}

// Required reports whether callers must supply the field.
func (f Field) Required() bool {
	return !f.Optional && f.Default == nil
}

// AsOptional returns a copy of f that may be omitted.
func (f Field) AsOptional() Field {
	f.Optional = true
	return f
}

// WithDefault returns a copy of f that takes v when omitted.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// WithMinimum returns a copy of f bounded below by min.
func (f Field) WithMinimum(min float64) Field {
	f.Minimum = &min
	return f
}

// String declares a string field.
func String(name, description string) Field {
	return Field{Name: name, Kind: KindString, Description: description}
}

// Number declares a floating-point field.
func Number(name, description string) Field {
	return Field{Name: name, Kind: KindNumber, Description: description}
}

// Integer declares a whole-number field.
func Integer(name, description string) Field {
	return Field{Name: name, Kind: KindInteger, Description: description}
}

// Boolean declares a true/false field.
func Boolean(name, description string) Field {
	return Field{Name: name, Kind: KindBoolean, Description: description}
}

// Enum declares a string field restricted to values.
func Enum(name, description string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Description: description, Enum: values}
}

// Array declares a list field whose elements match items.
func Array(name, description string, items Field) Field {
	return Field{Name: name, Kind: KindArray, Description: description, Items: &items}
}

// Object declares a nested field with its own members.
func Object(name, description string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Description: description, Fields: fields}
}

// Schema is the ordered parameter list of one function.
type Schema struct {
	Fields []Field
}

// New returns a schema over fields, kept in declaration order.
func New(fields ...Field) Schema {
	return Schema{Fields: fields}
}
