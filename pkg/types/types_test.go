// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func authorMetrics() Metrics {
	return Metrics{
		"citations": Scalar(4823),
		"hIndex":    Scalar(34),
		"outputsInTopCitationPercentiles": Group(map[string]float64{
			"top1": 8, "top5": 23, "top10": 41,
		}),
	}
}

func TestEntityTypeValid(t *testing.T) {
	for _, et := range EntityTypes {
		assert.True(t, et.Valid(), et)
	}
	assert.False(t, EntityType("paper").Valid())
	assert.Equal(t, []string{"author", "institution", "journal"}, EntityTypeNames())
}

func TestMetricsLookup(t *testing.T) {
	m := authorMetrics()
	tests := []struct {
		name string
		want float64
		ok   bool
	}{
		{"citations", 4823, true},
		{"outputsInTopCitationPercentiles.top5", 23, true},
		{"outputsInTopCitationPercentiles", 0, false},
		{"outputsInTopCitationPercentiles.top50", 0, false},
		{"citations.total", 0, false},
		{"fwci", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Lookup(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricsSelect(t *testing.T) {
	m := authorMetrics()

	got := m.Select([]string{"hIndex", "outputsInTopCitationPercentiles.top1", "missing"})
	assert.Equal(t, Metrics{
		"hIndex":                               Scalar(34),
		"outputsInTopCitationPercentiles.top1": Scalar(8),
	}, got)

	got = m.Select([]string{"outputsInTopCitationPercentiles"})
	assert.True(t, got["outputsInTopCitationPercentiles"].IsGroup())

	assert.Empty(t, m.Select([]string{"nope"}))
}

func TestMetricsClone(t *testing.T) {
	orig := authorMetrics()
	c := orig.Clone()
	assert.Equal(t, orig, c)

	c["citations"] = Scalar(0)
	c["outputsInTopCitationPercentiles"].Parts["top1"] = 99
	delete(c, "hIndex")

	assert.Equal(t, authorMetrics(), orig)
	assert.Nil(t, Metrics(nil).Clone())
}

func TestMetricsNames(t *testing.T) {
	assert.Equal(t, []string{
		"citations",
		"hIndex",
		"outputsInTopCitationPercentiles.top1",
		"outputsInTopCitationPercentiles.top10",
		"outputsInTopCitationPercentiles.top5",
	}, authorMetrics().Names())
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "4823", Scalar(4823).String())
	assert.Equal(t, "2.41", Scalar(2.41).String())
	assert.Equal(t, "{a=1, b=2.5}", Group(map[string]float64{"b": 2.5, "a": 1}).String())
}

func TestMetricJSON(t *testing.T) {
	data, err := json.Marshal(authorMetrics())
	require.NoError(t, err)
	assert.JSONEq(t, `{"citations":4823,"hIndex":34,"outputsInTopCitationPercentiles":{"top1":8,"top5":23,"top10":41}}`, string(data))

	var back Metrics
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, authorMetrics(), back)

	var bad Metrics
	assert.Error(t, json.Unmarshal([]byte(`{"x":"high"}`), &bad))
}

func TestMetricYAML(t *testing.T) {
	var m Metrics
	require.NoError(t, yaml.Unmarshal([]byte("citations: 4823\nsplit:\n  a: 1\n  b: 2\n"), &m))
	assert.Equal(t, Scalar(4823), m["citations"])
	assert.Equal(t, Group(map[string]float64{"a": 1, "b": 2}), m["split"])

	err := yaml.Unmarshal([]byte("citations: many\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `metric value "many" is not a number`)

	err = yaml.Unmarshal([]byte("deep:\n  a:\n    b: 1\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested metric must map names to numbers")

	err = yaml.Unmarshal([]byte("list: [1, 2]\n"), &m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metric must be a number or a mapping")
}

func TestTrendSeriesBetween(t *testing.T) {
	s := TrendSeries{EntityID: "auth_001", Metric: "citations", Points: []TrendPoint{
		{2019, 612}, {2020, 789}, {2021, 945}, {2022, 1102}, {2023, 1375},
	}}
	year := func(y int) *int { return &y }

	assert.Len(t, s.Between(nil, nil), 5)
	assert.Equal(t, []TrendPoint{{2020, 789}, {2021, 945}, {2022, 1102}}, s.Between(year(2020), year(2022)))
	assert.Equal(t, []TrendPoint{{2023, 1375}}, s.Between(year(2023), nil))
	assert.Equal(t, []TrendPoint{{2019, 612}}, s.Between(nil, year(2019)))

	empty := s.Between(year(2022), year(2020))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Batch.MaxItems)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Dataset.Path)
}
