// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry is the function-calling contract layer: an immutable
// table of named functions, each with a declared parameter schema, and the
// generic boundary that introspects, validates, dispatches, and wraps
// results in envelopes. Transports (HTTP, MCP, CLI) sit on top of Invoke,
// InvokeBatch, and Introspect and carry no per-function glue.
package registry

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-analytics/internal/schema"
)

// Implementation computes a function's result from validated parameters.
// A nil result with a nil error means "not found" and is a success.
type Implementation func(ctx context.Context, p schema.Params) (any, error)

// FunctionSpec is one registry entry.
type FunctionSpec struct {
	Name           string
	Description    string
	Parameters     schema.Schema
	Implementation Implementation
}

// Registry maps function names to specs. It is built once and never
// modified, so lookups need no locking.
type Registry struct {
	specs            []FunctionSpec
	byName           map[string]int
	batchConcurrency int
}

// Option configures a Registry.
type Option func(*Registry)

// WithBatchConcurrency bounds how many batch items run at once. Values
// below one mean one.
func WithBatchConcurrency(n int) Option {
	return func(r *Registry) {
		if n < 1 {
			n = 1
		}
		r.batchConcurrency = n
	}
}

// defaultBatchConcurrency matches BatchConfig's default.
const defaultBatchConcurrency = 4

// New builds a registry from specs, kept in the given order. Names must be
// non-empty and unique and every spec needs an implementation.
func New(specs []FunctionSpec, opts ...Option) (*Registry, error) {
	r := &Registry{
		specs:            make([]FunctionSpec, len(specs)),
		byName:           make(map[string]int, len(specs)),
		batchConcurrency: defaultBatchConcurrency,
	}
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("function #%d: missing name", i+1)
		}
		if _, dup := r.byName[spec.Name]; dup {
			return nil, fmt.Errorf("function %s: registered twice", spec.Name)
		}
		if spec.Implementation == nil {
			return nil, fmt.Errorf("function %s: missing implementation", spec.Name)
		}
		r.specs[i] = spec
		r.byName[spec.Name] = i
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (FunctionSpec, bool) {
	i, ok := r.byName[name]
	if !ok {
		return FunctionSpec{}, false
	}
	return r.specs[i], true
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, spec := range r.specs {
		names[i] = spec.Name
	}
	return names
}

// Len returns the number of registered functions.
func (r *Registry) Len() int { return len(r.specs) }
