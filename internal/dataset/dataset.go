// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset holds the read-only entity collections and trend series
// the analytics functions query. A Dataset is built once at startup, from
// the embedded reference fixture or a YAML/SQLite snapshot, and never
// mutated afterwards, so it is safe for concurrent readers without locks.
package dataset

import (
	"fmt"

	"github.com/pdiddy/research-analytics/pkg/types"
)

// Reader is the read-only access shape the analytics functions depend on.
// Any future backend must keep these semantics: Get is an exact id match,
// Scan visits a collection in insertion order until fn returns false, and
// Series returns points ascending by year.
type Reader interface {
	Get(t types.EntityType, id string) (types.Entity, bool)
	Scan(t types.EntityType, fn func(types.Entity) bool)
	Series(entityID, metric string) (types.TrendSeries, bool)
}

type seriesKey struct {
	entityID string
	metric   string
}

// Dataset is the in-memory Reader.
type Dataset struct {
	collections map[types.EntityType][]types.Entity
	index       map[types.EntityType]map[string]int
	series      map[seriesKey]types.TrendSeries
	seriesOrder []seriesKey
}

var _ Reader = (*Dataset)(nil)

// Contents is the raw material of a Dataset, in snapshot order.
type Contents struct {
	Authors      []types.Entity      `yaml:"authors"`
	Institutions []types.Entity      `yaml:"institutions"`
	Journals     []types.Entity      `yaml:"journals"`
	Trends       []types.TrendSeries `yaml:"trends"`
}

func (c *Contents) collection(t types.EntityType) []types.Entity {
	switch t {
	case types.EntityAuthor:
		return c.Authors
	case types.EntityInstitution:
		return c.Institutions
	case types.EntityJournal:
		return c.Journals
	}
	return nil
}

// New validates c and builds a Dataset. Ids must be non-empty and unique
// within a type, every series must name an entity and a metric, and series
// years must be strictly ascending.
func New(c Contents) (*Dataset, error) {
	d := &Dataset{
		collections: make(map[types.EntityType][]types.Entity, len(types.EntityTypes)),
		index:       make(map[types.EntityType]map[string]int, len(types.EntityTypes)),
		series:      make(map[seriesKey]types.TrendSeries, len(c.Trends)),
	}

	for _, t := range types.EntityTypes {
		src := c.collection(t)
		entities := make([]types.Entity, len(src))
		idx := make(map[string]int, len(src))
		for i, e := range src {
			if e.ID == "" {
				return nil, fmt.Errorf("%s #%d: missing id", t, i+1)
			}
			if _, dup := idx[e.ID]; dup {
				return nil, fmt.Errorf("%s %s: duplicate id", t, e.ID)
			}
			e.Type = t
			if e.Metrics == nil {
				e.Metrics = types.Metrics{}
			}
			entities[i] = e
			idx[e.ID] = i
		}
		d.collections[t] = entities
		d.index[t] = idx
	}

	for i, s := range c.Trends {
		if s.EntityID == "" || s.Metric == "" {
			return nil, fmt.Errorf("trend #%d: entity_id and metric are required", i+1)
		}
		key := seriesKey{entityID: s.EntityID, metric: s.Metric}
		if _, dup := d.series[key]; dup {
			return nil, fmt.Errorf("trend %s/%s: duplicate series", s.EntityID, s.Metric)
		}
		for j := 1; j < len(s.Points); j++ {
			if s.Points[j].Year <= s.Points[j-1].Year {
				return nil, fmt.Errorf("trend %s/%s: years must be strictly ascending (%d follows %d)",
					s.EntityID, s.Metric, s.Points[j].Year, s.Points[j-1].Year)
			}
		}
		points := make([]types.TrendPoint, len(s.Points))
		copy(points, s.Points)
		s.Points = points
		d.series[key] = s
		d.seriesOrder = append(d.seriesOrder, key)
	}

	return d, nil
}

// Get returns the entity of type t with the given id. The entity's
// metrics are a copy; changing them does not change the dataset.
func (d *Dataset) Get(t types.EntityType, id string) (types.Entity, bool) {
	i, ok := d.index[t][id]
	if !ok {
		return types.Entity{}, false
	}
	return d.collections[t][i].Clone(), true
}

// Scan calls fn for each entity of type t in insertion order, stopping
// early when fn returns false. Entities are passed as copies.
func (d *Dataset) Scan(t types.EntityType, fn func(types.Entity) bool) {
	for _, e := range d.collections[t] {
		if !fn(e.Clone()) {
			return
		}
	}
}

// Series returns a copy of the trend series for (entityID, metric).
func (d *Dataset) Series(entityID, metric string) (types.TrendSeries, bool) {
	s, ok := d.series[seriesKey{entityID: entityID, metric: metric}]
	if ok {
		s.Points = append([]types.TrendPoint(nil), s.Points...)
	}
	return s, ok
}

// Len returns the number of entities of type t.
func (d *Dataset) Len(t types.EntityType) int {
	return len(d.collections[t])
}

// Contents returns the dataset's raw material in insertion order, for
// snapshot export.
func (d *Dataset) Contents() Contents {
	c := Contents{
		Authors:      d.collections[types.EntityAuthor],
		Institutions: d.collections[types.EntityInstitution],
		Journals:     d.collections[types.EntityJournal],
	}
	for _, key := range d.seriesOrder {
		c.Trends = append(c.Trends, d.series[key])
	}
	return c
}
