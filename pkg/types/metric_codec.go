// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// MarshalJSON encodes a scalar metric as a number and a group as an object.
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.IsGroup() {
		return json.Marshal(m.Parts)
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or a flat object of numbers.
func (m *Metric) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*m = Scalar(v)
		return nil
	}
	var parts map[string]float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("metric must be a number or an object of numbers: %w", err)
	}
	*m = Group(parts)
	return nil
}

// MarshalYAML encodes a scalar metric as a number and a group as a mapping.
func (m Metric) MarshalYAML() (any, error) {
	if m.IsGroup() {
		return m.Parts, nil
	}
	return m.Value, nil
}

// UnmarshalYAML accepts a scalar number or a mapping of numbers. Deeper
// nesting is rejected.
func (m *Metric) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("line %d: metric value %q is not a number", node.Line, node.Value)
		}
		*m = Scalar(v)
		return nil
	case yaml.MappingNode:
		var parts map[string]float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: nested metric must map names to numbers: %w", node.Line, err)
		}
		if parts == nil {
			parts = map[string]float64{}
		}
		*m = Group(parts)
		return nil
	default:
		return fmt.Errorf("line %d: metric must be a number or a mapping of numbers", node.Line)
	}
}
