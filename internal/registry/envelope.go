// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/schema"
)

// ErrorCode identifies a failure category on the wire.
type ErrorCode string

const (
	CodeFunctionNotFound  ErrorCode = "FUNCTION_NOT_FOUND"
	CodeInvalidParameters ErrorCode = "INVALID_PARAMETERS"
	CodeExecutionFailure  ErrorCode = "EXECUTION_FAILURE"
)

// ErrorDetail describes why an invocation failed.
type ErrorDetail struct {
	Code    ErrorCode           `json:"code" yaml:"code"`
	Message string              `json:"message" yaml:"message"`
	Hint    string              `json:"hint,omitempty" yaml:"hint,omitempty"`
	Fields  []schema.FieldError `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Envelope is the uniform outcome of one invocation. On success Result
// holds the function's return value, which is null when nothing was found.
type Envelope struct {
	Success  bool         `json:"success" yaml:"success"`
	Function string       `json:"function" yaml:"function"`
	Result   any          `json:"result" yaml:"result"`
	Error    *ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the underlying error of a failed envelope, marked with one of
// errors.ErrFunctionNotFound, errors.ErrInvalidParameters, or
// errors.ErrExecutionFailure. It is nil on success and for envelopes
// decoded from the wire.
func (e Envelope) Err() error { return e.err }

func success(function string, result any) Envelope {
	return Envelope{Success: true, Function: function, Result: result}
}

func failure(function string, err error) Envelope {
	detail := &ErrorDetail{Message: err.Error(), Hint: errors.FlattenHints(err)}
	switch {
	case errors.Is(err, errors.ErrFunctionNotFound):
		detail.Code = CodeFunctionNotFound
	case errors.Is(err, errors.ErrInvalidParameters):
		detail.Code = CodeInvalidParameters
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			detail.Fields = verr.Errors
		}
	default:
		detail.Code = CodeExecutionFailure
	}
	return Envelope{Function: function, Error: detail, err: err}
}
