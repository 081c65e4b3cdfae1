// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

// Params holds validated parameters keyed by field name. Values are
// normalized by Validate, so the accessors below only need type
// assertions. Accessors return the zero value for absent fields.
type Params map[string]any

// Has reports whether name was supplied or defaulted.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// String returns a string or enum parameter.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Float returns a number parameter.
func (p Params) Float(name string) float64 {
	switch n := p[name].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// Int returns an integer parameter.
func (p Params) Int(name string) int {
	n, _ := p[name].(int)
	return n
}

// OptionalInt returns an integer parameter, or nil when it was omitted.
func (p Params) OptionalInt(name string) *int {
	n, ok := p[name].(int)
	if !ok {
		return nil
	}
	return &n
}

// Bool returns a boolean parameter.
func (p Params) Bool(name string) bool {
	b, _ := p[name].(bool)
	return b
}

// Strings returns an array-of-strings parameter, or nil when omitted.
func (p Params) Strings(name string) []string {
	items, ok := p[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Object returns a nested object parameter.
func (p Params) Object(name string) Params {
	o, _ := p[name].(Params)
	return o
}
