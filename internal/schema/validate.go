// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// FieldError describes one parameter that failed validation, with enough
// detail for a caller to correct the call and retry.
type FieldError struct {
	// Path locates the parameter, e.g. "limit", "filter.year", "metricNames[2]".
	Path string `json:"path"`

	// Expected is the declared kind, or "one of [...]" for enums.
	Expected string `json:"expected"`

	// Received is the kind of the supplied value ("missing" when absent).
	Received string `json:"received"`

	// Value echoes the supplied value when there was one.
	Value any `json:"value,omitempty"`

	// Message is a human-readable summary.
	Message string `json:"message"`
}

// ValidationError collects every FieldError found in one call.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Path + ": " + fe.Message
	}
	return "invalid parameters: " + strings.Join(msgs, "; ")
}

// Validate checks raw against s and returns normalized parameters with
// defaults applied. Null values count as omitted. Parameters not declared
// in s are rejected. A failure is always a *ValidationError listing every
// offending field, in declaration order followed by unknown names sorted.
func (s Schema) Validate(raw map[string]any) (Params, error) {
	var errs []FieldError
	out := validateObject(s.Fields, raw, "", &errs)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return out, nil
}

func validateObject(fields []Field, raw map[string]any, prefix string, errs *[]FieldError) Params {
	out := make(Params, len(fields))
	declared := make(map[string]bool, len(fields))

	for _, f := range fields {
		declared[f.Name] = true
		path := joinPath(prefix, f.Name)

		v, present := raw[f.Name]
		if !present || v == nil {
			switch {
			case f.Default != nil:
				dv, ok := convert(f, f.Default, path, errs)
				if ok {
					out[f.Name] = dv
				}
			case f.Required():
				*errs = append(*errs, FieldError{
					Path:     path,
					Expected: expected(f),
					Received: "missing",
					Message:  "required parameter is missing",
				})
			}
			continue
		}

		if cv, ok := convert(f, v, path, errs); ok {
			out[f.Name] = cv
		}
	}

	var unknown []string
	for name := range raw {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		*errs = append(*errs, FieldError{
			Path:     joinPath(prefix, name),
			Expected: "no such parameter",
			Received: kindOf(raw[name]),
			Value:    raw[name],
			Message:  "unknown parameter",
		})
	}

	return out
}

// convert checks one value against f and returns its normalized form:
// string, float64, int, bool, []any, or Params.
func convert(f Field, v any, path string, errs *[]FieldError) (any, bool) {
	mismatch := func(msg string) (any, bool) {
		*errs = append(*errs, FieldError{
			Path:     path,
			Expected: expected(f),
			Received: kindOf(v),
			Value:    v,
			Message:  msg,
		})
		return nil, false
	}

	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return mismatch("must be a string")
		}
		return s, true

	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return mismatch("must be one of " + strings.Join(f.Enum, ", "))
		}
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, true
			}
		}
		*errs = append(*errs, FieldError{
			Path:     path,
			Expected: expected(f),
			Received: fmt.Sprintf("%q", s),
			Value:    s,
			Message:  "must be one of " + strings.Join(f.Enum, ", "),
		})
		return nil, false

	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return mismatch("must be a boolean")
		}
		return b, true

	case KindNumber, KindInteger:
		n, ok := toFloat(v)
		if !ok {
			if f.Kind == KindInteger {
				return mismatch("must be an integer")
			}
			return mismatch("must be a number")
		}
		if f.Kind == KindInteger && n != math.Trunc(n) {
			return mismatch("must be a whole number")
		}
		if f.Kind == KindInteger && (n < math.MinInt32 || n > math.MaxInt32) {
			return mismatch("out of range")
		}
		if f.Minimum != nil && n < *f.Minimum {
			return mismatch(fmt.Sprintf("must be at least %v", *f.Minimum))
		}
		if f.Kind == KindInteger {
			return int(n), true
		}
		return n, true

	case KindArray:
		items, ok := toSlice(v)
		if !ok {
			return mismatch("must be an array")
		}
		if f.Items == nil {
			return items, true
		}
		out := make([]any, 0, len(items))
		valid := true
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if item == nil {
				*errs = append(*errs, FieldError{
					Path:     itemPath,
					Expected: expected(*f.Items),
					Received: "null",
					Message:  "array elements must not be null",
				})
				valid = false
				continue
			}
			cv, ok := convert(*f.Items, item, itemPath, errs)
			if !ok {
				valid = false
				continue
			}
			out = append(out, cv)
		}
		return out, valid

	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			if p, isParams := v.(Params); isParams {
				m, ok = map[string]any(p), true
			}
		}
		if !ok {
			return mismatch("must be an object")
		}
		before := len(*errs)
		out := validateObject(f.Fields, m, path, errs)
		return out, len(*errs) == before
	}

	return mismatch(fmt.Sprintf("field declares unsupported kind %q", f.Kind))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	}
	return nil, false
}

// KindOf names the JSON kind of a decoded value as validation errors
// report it: "null", "string", "boolean", "integer", "number", "array",
// or "object".
func KindOf(v any) string { return kindOf(v) }

func kindOf(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, json.Number:
		if f, ok := toFloat(x); ok && f == math.Trunc(f) {
			return "integer"
		}
		return "number"
	case int, int32, int64:
		return "integer"
	case []any, []string:
		return "array"
	case map[string]any, Params:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func expected(f Field) string {
	switch f.Kind {
	case KindEnum:
		return "one of [" + strings.Join(f.Enum, ", ") + "]"
	case KindArray:
		if f.Items != nil {
			return "array of " + expected(*f.Items)
		}
	}
	return string(f.Kind)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
