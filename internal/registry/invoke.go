// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/logger"
	"github.com/pdiddy/research-analytics/internal/schema"
)

// Call is one entry of a batch.
type Call struct {
	Function   string         `json:"function" yaml:"function"`
	Parameters map[string]any `json:"parameters" yaml:"parameters"`

	// invalid is set when the wire item could not be decoded as a call.
	invalid *schema.FieldError
}

// UnmarshalJSON decodes a batch item without failing the whole batch: an
// item that is not an object, or whose parameters are not an object, is
// kept and later answered with INVALID_PARAMETERS.
func (c *Call) UnmarshalJSON(data []byte) error {
	var item struct {
		Function   string          `json:"function"`
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal(data, &item); err != nil {
		*c = Call{invalid: notObject("call", data)}
		return nil
	}
	*c = Call{Function: item.Function}
	if len(item.Parameters) == 0 || string(item.Parameters) == "null" {
		return nil
	}
	if err := json.Unmarshal(item.Parameters, &c.Parameters); err != nil {
		c.invalid = notObject("parameters", item.Parameters)
	}
	return nil
}

func notObject(path string, raw []byte) *schema.FieldError {
	var v any
	_ = json.Unmarshal(raw, &v)
	return &schema.FieldError{
		Path:     path,
		Expected: "object",
		Received: schema.KindOf(v),
		Value:    v,
		Message:  "must be an object",
	}
}

// BatchRequest is the wire form of a batch.
type BatchRequest struct {
	Calls []Call `json:"calls" yaml:"calls"`
}

// BatchResponse carries one envelope per call, in call order.
type BatchResponse struct {
	Results []Envelope `json:"results" yaml:"results"`
}

// Invoke looks up name, validates raw against its schema (applying
// defaults), runs it, and wraps the outcome. Unknown names yield
// FUNCTION_NOT_FOUND, validation failures INVALID_PARAMETERS with per-field
// detail, and errors or panics inside the function EXECUTION_FAILURE.
func (r *Registry) Invoke(ctx context.Context, name string, raw map[string]any) Envelope {
	start := time.Now()
	env := r.invoke(ctx, name, raw)
	observe(r, name, env, time.Since(start))
	return env
}

func (r *Registry) invoke(ctx context.Context, name string, raw map[string]any) Envelope {
	spec, ok := r.Lookup(name)
	if !ok {
		return failure(name, errors.WithHintf(
			errors.Wrapf(errors.ErrFunctionNotFound, "%q", name),
			"available functions: %v", r.Names()))
	}

	params, err := spec.Parameters.Validate(raw)
	if err != nil {
		return failure(name, errors.Mark(err, errors.ErrInvalidParameters))
	}

	if err := ctx.Err(); err != nil {
		return failure(name, errors.Mark(errors.Wrap(err, "request cancelled before dispatch"), errors.ErrExecutionFailure))
	}

	result, err := run(ctx, spec, params)
	if err != nil {
		return failure(name, errors.Mark(errors.Wrapf(err, "executing %s", name), errors.ErrExecutionFailure))
	}
	return success(name, result)
}

// run calls the implementation, turning a panic into an error.
func run(ctx context.Context, spec FunctionSpec, params schema.Params) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = errors.Newf("panic: %s", fmt.Sprint(p))
		}
	}()
	return spec.Implementation(ctx, params)
}

// InvokeBatch invokes every call independently and returns the envelopes in
// input order. A failed item does not affect the others and nothing is
// rolled back. Items run concurrently, bounded by the registry's batch
// concurrency.
func (r *Registry) InvokeBatch(ctx context.Context, calls []Call) []Envelope {
	batchSize.Observe(float64(len(calls)))

	results := make([]Envelope, len(calls))
	sem := make(chan struct{}, r.batchConcurrency)
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, call Call) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.invokeCall(ctx, call)
		}(i, call)
	}

	wg.Wait()
	return results
}

func (r *Registry) invokeCall(ctx context.Context, call Call) Envelope {
	if call.invalid == nil {
		return r.Invoke(ctx, call.Function, call.Parameters)
	}
	env := failure(call.Function, errors.Mark(
		&schema.ValidationError{Errors: []schema.FieldError{*call.invalid}},
		errors.ErrInvalidParameters))
	observe(r, call.Function, env, 0)
	return env
}

func observe(r *Registry, name string, env Envelope, elapsed time.Duration) {
	label := name
	if _, ok := r.byName[name]; !ok {
		label = "unknown"
	}
	outcome := "success"
	if !env.Success {
		outcome = string(env.Error.Code)
	}
	invocationsTotal.WithLabelValues(label, outcome).Inc()
	invocationDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	if env.Success {
		logger.Logger.Debugw("function invoked",
			"function", name,
			"found", env.Result != nil,
			"duration", elapsed)
		return
	}
	logger.Logger.Warnw("function invocation failed",
		"function", name,
		"code", env.Error.Code,
		"error", env.Error.Message,
		"duration", elapsed)
}
