// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"

	"github.com/pdiddy/research-analytics/internal/analytics"
	"github.com/pdiddy/research-analytics/internal/schema"
	"github.com/pdiddy/research-analytics/pkg/types"
)

// Function names.
const (
	FnGetEntity       = "getEntity"
	FnSearchEntities  = "searchEntities"
	FnGetMetrics      = "getMetrics"
	FnCompareEntities = "compareEntities"
	FnGetTrend        = "getTrend"
	FnGetTopEntities  = "getTopEntities"
)

func entityTypeField() schema.Field {
	return schema.Enum("entityType", "Kind of entity to query.", types.EntityTypeNames()...)
}

func limitField(description string) schema.Field {
	return schema.Integer("limit", description).
		WithDefault(analytics.DefaultLimit).
		WithMinimum(1)
}

// Functions returns the six analytics functions bound to engine, in the
// order they are published.
func Functions(engine *analytics.Engine) []FunctionSpec {
	return []FunctionSpec{
		{
			Name:        FnGetEntity,
			Description: "Get an author, institution, or journal by its identifier. Returns null when no entity of that type has the id.",
			Parameters: schema.New(
				entityTypeField(),
				schema.String("entityId", "Entity identifier, e.g. auth_001, inst_002, jour_003."),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				ent, ok := engine.GetEntity(types.EntityType(p.String("entityType")), p.String("entityId"))
				if !ok {
					return nil, nil
				}
				return ent, nil
			},
		},
		{
			Name:        FnSearchEntities,
			Description: "Search entities of one type by name. Matches a case-insensitive substring; an empty query returns every entity. Results keep dataset order.",
			Parameters: schema.New(
				entityTypeField(),
				schema.String("query", "Text to look for in entity names.").WithDefault(""),
				limitField("Maximum number of entities to return."),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				return engine.SearchEntities(
					types.EntityType(p.String("entityType")),
					p.String("query"),
					p.Int("limit"),
				), nil
			},
		},
		{
			Name:        FnGetMetrics,
			Description: "Get the metrics of an entity. Returns every metric unless metricNames selects some; dotted names such as outputsInTopCitationPercentiles.top1 select one nested value. Returns null when the entity does not exist.",
			Parameters: schema.New(
				entityTypeField(),
				schema.String("entityId", "Entity identifier."),
				schema.Array("metricNames", "Metric names to return. Omit for all metrics.",
					schema.String("metricName", "Metric name.")).AsOptional(),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				metrics, ok := engine.GetMetrics(
					types.EntityType(p.String("entityType")),
					p.String("entityId"),
					p.Strings("metricNames"),
				)
				if !ok {
					return nil, nil
				}
				return metrics, nil
			},
		},
		{
			Name:        FnCompareEntities,
			Description: "Compare one metric between two entities of the same type. difference is A minus B; percentDifference is relative to B and is 0 when B's value is 0. Returns null when either entity is missing or lacks the metric.",
			Parameters: schema.New(
				entityTypeField(),
				schema.String("entityIdA", "Identifier of entity A."),
				schema.String("entityIdB", "Identifier of entity B, the baseline of percentDifference."),
				schema.String("metric", "Metric to compare, e.g. citations or hIndex."),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				result, ok := engine.CompareEntities(
					types.EntityType(p.String("entityType")),
					p.String("entityIdA"),
					p.String("entityIdB"),
					p.String("metric"),
				)
				if !ok {
					return nil, nil
				}
				return result, nil
			},
		},
		{
			Name:        FnGetTrend,
			Description: "Get the yearly trend of a metric for an entity, ascending by year. startYear and endYear are inclusive and each may be omitted. Returns null when the metric is not tracked for the entity.",
			Parameters: schema.New(
				schema.String("entityId", "Entity identifier."),
				schema.String("metric", "Tracked metric, e.g. citations."),
				schema.Integer("startYear", "First year to include.").AsOptional(),
				schema.Integer("endYear", "Last year to include.").AsOptional(),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				points, ok := engine.GetTrend(
					p.String("entityId"),
					p.String("metric"),
					p.OptionalInt("startYear"),
					p.OptionalInt("endYear"),
				)
				if !ok {
					return nil, nil
				}
				return points, nil
			},
		},
		{
			Name:        FnGetTopEntities,
			Description: "Rank entities of one type by a metric, highest first. Entities without the metric count as 0; ties keep dataset order.",
			Parameters: schema.New(
				entityTypeField(),
				schema.String("metric", "Metric to rank by, e.g. citations or sjr."),
				limitField("Number of entities to return."),
			),
			Implementation: func(_ context.Context, p schema.Params) (any, error) {
				return engine.GetTopEntities(
					types.EntityType(p.String("entityType")),
					p.String("metric"),
					p.Int("limit"),
				), nil
			},
		},
	}
}

// NewDefault builds the registry of the six analytics functions.
func NewDefault(engine *analytics.Engine, opts ...Option) *Registry {
	r, err := New(Functions(engine), opts...)
	if err != nil {
		// Names above are constants; a failure here is a programming error.
		panic(err)
	}
	return r
}
