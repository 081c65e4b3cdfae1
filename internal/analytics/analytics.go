// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analytics implements the read-only queries over a dataset:
// entity lookup, search, metrics, comparison, trend, and top-N ranking.
// Every query is a pure read. "Not found" is reported through a boolean
// (or an empty slice), never an error.
package analytics

import (
	"sort"
	"strings"

	"github.com/pdiddy/research-analytics/internal/dataset"
	"github.com/pdiddy/research-analytics/pkg/types"
)

// DefaultLimit is the result cap of searchEntities and getTopEntities when
// the caller does not choose one.
const DefaultLimit = 10

// Engine runs queries against a read-only dataset. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	data dataset.Reader
}

// New returns an Engine reading from data.
func New(data dataset.Reader) *Engine {
	return &Engine{data: data}
}

// GetEntity returns the entity of type t with the exact id.
func (e *Engine) GetEntity(t types.EntityType, id string) (types.Entity, bool) {
	return e.data.Get(t, id)
}

// SearchEntities returns entities of type t whose name contains query,
// ignoring case, in collection order. An empty query matches every entity.
// A limit of zero or less returns every match.
func (e *Engine) SearchEntities(t types.EntityType, query string, limit int) []types.Entity {
	needle := strings.ToLower(query)
	results := []types.Entity{}
	e.data.Scan(t, func(ent types.Entity) bool {
		if strings.Contains(strings.ToLower(ent.Name), needle) {
			results = append(results, ent)
		}
		return limit <= 0 || len(results) < limit
	})
	return results
}

// GetMetrics returns the metrics of an entity. With no names every metric
// is returned; otherwise only the named metrics present on the entity,
// which may leave an empty mapping. Dotted names select one value of a
// nested group.
func (e *Engine) GetMetrics(t types.EntityType, id string, names []string) (types.Metrics, bool) {
	ent, ok := e.data.Get(t, id)
	if !ok {
		return nil, false
	}
	if len(names) == 0 {
		return ent.Metrics, true
	}
	return ent.Metrics.Select(names), true
}

// CompareEntities compares metric between entity A and entity B. It
// reports false when either entity is missing or the metric is not a
// numeric value on both. The percent difference is relative to B and is
// zero when B's value is zero.
func (e *Engine) CompareEntities(t types.EntityType, idA, idB, metric string) (types.ComparisonResult, bool) {
	a, ok := e.data.Get(t, idA)
	if !ok {
		return types.ComparisonResult{}, false
	}
	b, ok := e.data.Get(t, idB)
	if !ok {
		return types.ComparisonResult{}, false
	}
	va, ok := a.Metrics.Lookup(metric)
	if !ok {
		return types.ComparisonResult{}, false
	}
	vb, ok := b.Metrics.Lookup(metric)
	if !ok {
		return types.ComparisonResult{}, false
	}

	diff := va - vb
	var pct float64
	if vb != 0 {
		pct = diff / vb * 100
	}

	return types.ComparisonResult{
		EntityA:           types.EntityValue{ID: a.ID, Name: a.Name, Value: va},
		EntityB:           types.EntityValue{ID: b.ID, Name: b.Name, Value: vb},
		Difference:        diff,
		PercentDifference: pct,
	}, true
}

// GetTrend returns the series points for (entityID, metric) with
// startYear <= year <= endYear, ascending by year. A nil bound is open.
// It reports false when no series is tracked for that pair.
func (e *Engine) GetTrend(entityID, metric string, startYear, endYear *int) ([]types.TrendPoint, bool) {
	s, ok := e.data.Series(entityID, metric)
	if !ok {
		return nil, false
	}
	return s.Between(startYear, endYear), true
}

// GetTopEntities ranks entities of type t by metric, highest first.
// Entities without the metric rank as zero. Ties keep collection order.
// A limit of zero or less returns the whole ranking.
func (e *Engine) GetTopEntities(t types.EntityType, metric string, limit int) []types.Entity {
	type ranked struct {
		ent   types.Entity
		value float64
	}
	var all []ranked
	e.data.Scan(t, func(ent types.Entity) bool {
		v, _ := ent.Metrics.Lookup(metric)
		all = append(all, ranked{ent: ent, value: v})
		return true
	})

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].value > all[j].value
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]types.Entity, len(all))
	for i, r := range all {
		out[i] = r.ent
	}
	return out
}
