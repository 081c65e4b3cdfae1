// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// FieldDescription is the structural rendering of a Field published by
// introspection. Required mirrors Field.Required exactly, so a caller that
// supplies every required field never fails on a missing parameter.
type FieldDescription struct {
	Name        string             `json:"name" yaml:"name"`
	Type        Kind               `json:"type" yaml:"type"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool               `json:"required" yaml:"required"`
	Default     any                `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Items       *FieldDescription  `json:"items,omitempty" yaml:"items,omitempty"`
	Fields      []FieldDescription `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Describe renders the schema's fields in declaration order.
func (s Schema) Describe() []FieldDescription {
	return describeFields(s.Fields)
}

func describeFields(fields []Field) []FieldDescription {
	out := make([]FieldDescription, len(fields))
	for i, f := range fields {
		out[i] = describeField(f)
	}
	return out
}

func describeField(f Field) FieldDescription {
	d := FieldDescription{
		Name:        f.Name,
		Type:        f.Kind,
		Description: f.Description,
		Required:    f.Required(),
		Default:     f.Default,
		Enum:        f.Enum,
		Minimum:     f.Minimum,
	}
	if f.Items != nil {
		items := describeField(*f.Items)
		d.Items = &items
	}
	if len(f.Fields) > 0 {
		d.Fields = describeFields(f.Fields)
	}
	return d
}

// JSONSchema renders the schema as a JSON Schema object document, as MCP
// tool input schemas expect.
func (s Schema) JSONSchema() map[string]any {
	return objectSchema(s.Fields, "")
}

func objectSchema(fields []Field, description string) map[string]any {
	props := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
		if f.Required() {
			required = append(required, f.Name)
		}
	}
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
	if description != "" {
		doc["description"] = description
	}
	return doc
}

func fieldSchema(f Field) map[string]any {
	if f.Kind == KindObject {
		return objectSchema(f.Fields, f.Description)
	}
	doc := map[string]any{"type": jsonType(f.Kind)}
	if f.Description != "" {
		doc["description"] = f.Description
	}
	if len(f.Enum) > 0 {
		doc["enum"] = f.Enum
	}
	if f.Default != nil {
		doc["default"] = f.Default
	}
	if f.Minimum != nil {
		doc["minimum"] = *f.Minimum
	}
	if f.Items != nil {
		doc["items"] = fieldSchema(*f.Items)
	}
	return doc
}

func jsonType(k Kind) string {
	if k == KindEnum {
		return "string"
	}
	return string(k)
}

// OpenAIDefinition renders the schema in the shape the OpenAI function
// calling API takes as FunctionDefinition.Parameters. Defaults and minimums
// have no slot there, so they are appended to field descriptions.
func (s Schema) OpenAIDefinition() jsonschema.Definition {
	return openAIObject(s.Fields, "")
}

func openAIObject(fields []Field, description string) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: description,
		Properties:  make(map[string]jsonschema.Definition, len(fields)),
		Required:    []string{},
	}
	for _, f := range fields {
		def.Properties[f.Name] = openAIField(f)
		if f.Required() {
			def.Required = append(def.Required, f.Name)
		}
	}
	return def
}

func openAIField(f Field) jsonschema.Definition {
	if f.Kind == KindObject {
		return openAIObject(f.Fields, f.Description)
	}
	def := jsonschema.Definition{
		Description: annotatedDescription(f),
		Enum:        f.Enum,
	}
	switch f.Kind {
	case KindString, KindEnum:
		def.Type = jsonschema.String
	case KindNumber:
		def.Type = jsonschema.Number
	case KindInteger:
		def.Type = jsonschema.Integer
	case KindBoolean:
		def.Type = jsonschema.Boolean
	case KindArray:
		def.Type = jsonschema.Array
		if f.Items != nil {
			items := openAIField(*f.Items)
			def.Items = &items
		}
	}
	return def
}

func annotatedDescription(f Field) string {
	var notes []string
	if f.Default != nil {
		notes = append(notes, fmt.Sprintf("Default: %v.", f.Default))
	}
	if f.Minimum != nil {
		notes = append(notes, fmt.Sprintf("Minimum: %v.", *f.Minimum))
	}
	if len(notes) == 0 {
		return f.Description
	}
	if f.Description == "" {
		return strings.Join(notes, " ")
	}
	return f.Description + " " + strings.Join(notes, " ")
}
