// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research-analytics:
// the entity model (authors, institutions, journals), metrics, trend
// series, comparison results, and configuration.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// EntityType selects one of the three entity collections.
type EntityType string

const (
	EntityAuthor      EntityType = "author"
	EntityInstitution EntityType = "institution"
	EntityJournal     EntityType = "journal"
)

// EntityTypes lists every entity type in the order collections are stored.
var EntityTypes = []EntityType{EntityAuthor, EntityInstitution, EntityJournal}

// Valid reports whether t names a known entity collection.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// EntityTypeNames returns the entity type names as strings, for enum schemas.
func EntityTypeNames() []string {
	names := make([]string, len(EntityTypes))
	for i, t := range EntityTypes {
		names[i] = string(t)
	}
	return names
}

// Entity is a named record with a metrics mapping. The variant-specific
// fields are populated according to Type: Affiliation for authors, Country
// for institutions, Publisher for journals.
type Entity struct {
	// ID is unique within its entity type (e.g. "auth_001").
	ID string `json:"id" yaml:"id"`

	// Type is the collection the entity belongs to.
	Type EntityType `json:"type" yaml:"-"`

	// Name is the display name searched by searchEntities.
	Name string `json:"name" yaml:"name"`

	// Affiliation is the author's institution (authors only, optional).
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Country is the institution's country (institutions only).
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// Publisher is the journal's publisher (journals only).
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Metrics holds the entity's named numeric attributes.
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Clone returns a copy of e whose metrics can be modified freely.
func (e Entity) Clone() Entity {
	e.Metrics = e.Metrics.Clone()
	return e
}

// Metrics maps a metric name to a scalar value or a one-level breakdown.
type Metrics map[string]Metric

// Metric is either a scalar value or, when Parts is non-nil, a group of
// named scalar values (e.g. outputsInTopCitationPercentiles.top1).
type Metric struct {
	Value float64
	Parts map[string]float64
}

// Scalar returns a scalar metric.
func Scalar(v float64) Metric { return Metric{Value: v} }

// Group returns a nested metric.
func Group(parts map[string]float64) Metric { return Metric{Parts: parts} }

// IsGroup reports whether m is a nested breakdown rather than a number.
func (m Metric) IsGroup() bool { return m.Parts != nil }

// Clone copies ms including the parts of nested groups.
func (ms Metrics) Clone() Metrics {
	if ms == nil {
		return nil
	}
	out := make(Metrics, len(ms))
	for name, m := range ms {
		if m.IsGroup() {
			parts := make(map[string]float64, len(m.Parts))
			for k, v := range m.Parts {
				parts[k] = v
			}
			m.Parts = parts
		}
		out[name] = m
	}
	return out
}

// Lookup returns the numeric value for name. A dotted name such as
// "outputsInTopCitationPercentiles.top5" addresses a value inside a group.
// A group addressed without a part is not a numeric value.
func (ms Metrics) Lookup(name string) (float64, bool) {
	if m, ok := ms[name]; ok {
		if m.IsGroup() {
			return 0, false
		}
		return m.Value, true
	}
	group, part, found := strings.Cut(name, ".")
	if !found {
		return 0, false
	}
	m, ok := ms[group]
	if !ok || !m.IsGroup() {
		return 0, false
	}
	v, ok := m.Parts[part]
	return v, ok
}

// Select returns the subset of ms named in names. Top-level names copy the
// metric as-is; dotted names copy a single part under the dotted key.
// Names that match nothing are skipped.
func (ms Metrics) Select(names []string) Metrics {
	out := make(Metrics, len(names))
	for _, name := range names {
		if m, ok := ms[name]; ok {
			out[name] = m
			continue
		}
		if v, ok := ms.Lookup(name); ok {
			out[name] = Scalar(v)
		}
	}
	return out
}

// Names returns the metric names of ms, with group parts in dotted form.
func (ms Metrics) Names() []string {
	var names []string
	for name, m := range ms {
		if !m.IsGroup() {
			names = append(names, name)
			continue
		}
		for part := range m.Parts {
			names = append(names, name+"."+part)
		}
	}
	sort.Strings(names)
	return names
}

// String renders a metric for table output.
func (m Metric) String() string {
	if !m.IsGroup() {
		return formatNumber(m.Value)
	}
	keys := make([]string, 0, len(m.Parts))
	for k := range m.Parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatNumber(m.Parts[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
