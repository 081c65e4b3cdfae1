// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"github.com/sashabaranov/go-openai"

	"github.com/pdiddy/research-analytics/internal/schema"
)

// FunctionDescription is the published form of one registered function.
type FunctionDescription struct {
	Name        string                    `json:"name" yaml:"name"`
	Description string                    `json:"description" yaml:"description"`
	Parameters  []schema.FieldDescription `json:"parameters" yaml:"parameters"`
}

// Introspect describes every registered function in registration order.
func (r *Registry) Introspect() []FunctionDescription {
	out := make([]FunctionDescription, len(r.specs))
	for i, spec := range r.specs {
		out[i] = FunctionDescription{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters:  spec.Parameters.Describe(),
		}
	}
	return out
}

// OpenAITools renders the registry as OpenAI function-calling tools, in
// registration order, ready for ChatCompletionRequest.Tools.
func (r *Registry) OpenAITools() []openai.Tool {
	tools := make([]openai.Tool, len(r.specs))
	for i, spec := range r.specs {
		tools[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters.OpenAIDefinition(),
			},
		}
	}
	return tools
}
