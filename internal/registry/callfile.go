// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"bytes"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ReadCallFile loads a batch of calls from a YAML or JSON file. The file is
// either a list of calls or a document with a top-level calls list:
//
//	calls:
//	  - function: getEntity
//	    parameters: {entityType: author, entityId: auth_001}
func ReadCallFile(path string) ([]Call, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading call file: %w", err)
	}
	return ParseCalls(data)
}

// ParseCalls decodes the contents of a call file. JSON is accepted because
// it is valid YAML.
func ParseCalls(data []byte) ([]Call, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing call file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("parsing call file: empty document")
	}

	var calls []Call
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		err := root.Decode(&calls)
		if err != nil {
			return nil, fmt.Errorf("parsing call file: %w", err)
		}
	case yaml.MappingNode:
		var req BatchRequest
		if err := root.Decode(&req); err != nil {
			return nil, fmt.Errorf("parsing call file: %w", err)
		}
		calls = req.Calls
	default:
		return nil, fmt.Errorf("parsing call file: line %d: want a list of calls or a calls mapping", root.Line)
	}

	for i, c := range calls {
		if c.Function == "" {
			return nil, fmt.Errorf("call #%d: missing function", i+1)
		}
	}
	return calls, nil
}

// WriteCallFile saves calls in the mapping form read by ReadCallFile.
func WriteCallFile(path string, calls []Call) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(BatchRequest{Calls: calls}); err != nil {
		return fmt.Errorf("marshaling call file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling call file: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
