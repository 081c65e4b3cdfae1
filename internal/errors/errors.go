// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors re-exports github.com/cockroachdb/errors and defines the
// sentinel errors of the invocation boundary.
//
// Categories are attached with Mark so that errors.Is identifies the
// category while errors.As still reaches the concrete error:
//
//	err := errors.Mark(&schema.ValidationError{...}, errors.ErrInvalidParameters)
//	errors.Is(err, errors.ErrInvalidParameters) // true
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Mark  = crdb.Mark
)

// User-facing hints and details.
var (
	WithHintf    = crdb.WithHintf
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
)

// Inspection.
var (
	Is = crdb.Is
	As = crdb.As
)

// Sentinel categories of the invocation boundary.
var (
	// ErrFunctionNotFound marks a call to a name absent from the registry.
	ErrFunctionNotFound = New("function not found")

	// ErrInvalidParameters marks input that failed schema validation.
	ErrInvalidParameters = New("invalid parameters")

	// ErrExecutionFailure marks an unexpected fault inside a function.
	ErrExecutionFailure = New("execution failure")
)
