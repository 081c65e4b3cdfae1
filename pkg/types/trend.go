// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TrendPoint is one yearly observation in a trend series.
type TrendPoint struct {
	Year  int     `json:"year" yaml:"year"`
	Value float64 `json:"value" yaml:"value"`
}

// TrendSeries is the time-ordered history of one metric for one entity.
// Points are ascending by year and years are unique.
type TrendSeries struct {
	// EntityID identifies the entity the series belongs to.
	EntityID string `json:"entityId" yaml:"entity_id"`

	// Metric names the measured metric (e.g. "citations").
	Metric string `json:"metric" yaml:"metric"`

	// Points holds the yearly observations.
	Points []TrendPoint `json:"points" yaml:"points"`
}

// Between returns the points with startYear <= year <= endYear. A nil bound
// leaves that side open. The returned slice is never nil.
func (s TrendSeries) Between(startYear, endYear *int) []TrendPoint {
	out := make([]TrendPoint, 0, len(s.Points))
	for _, p := range s.Points {
		if startYear != nil && p.Year < *startYear {
			continue
		}
		if endYear != nil && p.Year > *endYear {
			continue
		}
		out = append(out, p)
	}
	return out
}

// EntityValue is one side of a comparison.
type EntityValue struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ComparisonResult holds the outcome of compareEntities. PercentDifference
// is relative to EntityB and is zero when EntityB's value is zero.
type ComparisonResult struct {
	EntityA           EntityValue `json:"entityA"`
	EntityB           EntityValue `json:"entityB"`
	Difference        float64     `json:"difference"`
	PercentDifference float64     `json:"percentDifference"`
}
