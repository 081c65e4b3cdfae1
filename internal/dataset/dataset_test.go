// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-analytics/pkg/types"
)

func TestLoadFixture(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	for _, kind := range types.EntityTypes {
		assert.Equal(t, 3, d.Len(kind), "fixture should hold three %s entities", kind)
	}

	chen, ok := d.Get(types.EntityAuthor, "auth_001")
	require.True(t, ok)
	assert.Equal(t, "Dr. Sarah Chen", chen.Name)
	assert.Equal(t, types.EntityAuthor, chen.Type)
	v, ok := chen.Metrics.Lookup("citations")
	require.True(t, ok)
	assert.Equal(t, 4823.0, v)

	top5, ok := chen.Metrics.Lookup("outputsInTopCitationPercentiles.top5")
	require.True(t, ok)
	assert.Equal(t, 23.0, top5)

	s, ok := d.Series("auth_001", "citations")
	require.True(t, ok)
	assert.Len(t, s.Points, 5)
}

func TestLoadIsShared(t *testing.T) {
	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestGetUnknownAndWrongType(t *testing.T) {
	d := MustLoad()

	_, ok := d.Get(types.EntityAuthor, "auth_999")
	assert.False(t, ok)

	// Ids are unique within their own collection only.
	_, ok = d.Get(types.EntityJournal, "auth_001")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	d := MustLoad()

	chen, ok := d.Get(types.EntityAuthor, "auth_001")
	require.True(t, ok)
	chen.Metrics["citations"] = types.Scalar(0)
	chen.Metrics["outputsInTopCitationPercentiles"].Parts["top5"] = 0
	delete(chen.Metrics, "hIndex")

	d.Scan(types.EntityAuthor, func(e types.Entity) bool {
		e.Metrics["citations"] = types.Scalar(-1)
		return true
	})

	s, ok := d.Series("auth_001", "citations")
	require.True(t, ok)
	s.Points[0].Value = -1

	again, ok := d.Get(types.EntityAuthor, "auth_001")
	require.True(t, ok)
	v, _ := again.Metrics.Lookup("citations")
	assert.Equal(t, 4823.0, v)
	v, _ = again.Metrics.Lookup("outputsInTopCitationPercentiles.top5")
	assert.Equal(t, 23.0, v)
	_, ok = again.Metrics.Lookup("hIndex")
	assert.True(t, ok)

	s, _ = d.Series("auth_001", "citations")
	assert.NotEqual(t, -1.0, s.Points[0].Value)
}

func TestScanOrderAndEarlyStop(t *testing.T) {
	d := MustLoad()

	var ids []string
	d.Scan(types.EntityInstitution, func(e types.Entity) bool {
		ids = append(ids, e.ID)
		return true
	})
	assert.Equal(t, []string{"inst_001", "inst_002", "inst_003"}, ids)

	var visited int
	d.Scan(types.EntityInstitution, func(types.Entity) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestSeriesKeyedByMetric(t *testing.T) {
	d := MustLoad()

	_, ok := d.Series("auth_001", "citations")
	assert.True(t, ok)

	// The fixture tracks only citations for auth_001.
	_, ok = d.Series("auth_001", "hIndex")
	assert.False(t, ok)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents Contents
		errMsg   string
	}{
		{
			name:     "missing id",
			contents: Contents{Authors: []types.Entity{{Name: "Nobody"}}},
			errMsg:   "missing id",
		},
		{
			name: "duplicate id",
			contents: Contents{Journals: []types.Entity{
				{ID: "j1", Name: "A"},
				{ID: "j1", Name: "B"},
			}},
			errMsg: "duplicate id",
		},
		{
			name: "years out of order",
			contents: Contents{Trends: []types.TrendSeries{{
				EntityID: "a1", Metric: "citations",
				Points: []types.TrendPoint{{Year: 2021, Value: 1}, {Year: 2020, Value: 2}},
			}}},
			errMsg: "strictly ascending",
		},
		{
			name: "repeated year",
			contents: Contents{Trends: []types.TrendSeries{{
				EntityID: "a1", Metric: "citations",
				Points: []types.TrendPoint{{Year: 2020, Value: 1}, {Year: 2020, Value: 2}},
			}}},
			errMsg: "strictly ascending",
		},
		{
			name:     "series without metric",
			contents: Contents{Trends: []types.TrendSeries{{EntityID: "a1"}}},
			errMsg:   "metric are required",
		},
		{
			name: "duplicate series",
			contents: Contents{Trends: []types.TrendSeries{
				{EntityID: "a1", Metric: "citations"},
				{EntityID: "a1", Metric: "citations"},
			}},
			errMsg: "duplicate series",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.contents)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestYAMLSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, MustLoad().WriteYAML(path))

	d, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MustLoad().Contents(), d.Contents())
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dataset.db")
	require.NoError(t, MustLoad().WriteSQLite(ctx, path))

	// Writing twice replaces the file instead of failing on primary keys.
	require.NoError(t, MustLoad().WriteSQLite(ctx, path))

	d, err := LoadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, MustLoad().Contents(), d.Contents())

	chen, ok := d.Get(types.EntityAuthor, "auth_001")
	require.True(t, ok)
	assert.True(t, chen.Metrics["outputsInTopCitationPercentiles"].IsGroup())
}

func TestLoadFileErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := LoadFile(ctx, filepath.Join(dir, "dataset.csv"))
	assert.ErrorContains(t, err, "unsupported dataset file")

	_, err = LoadFile(ctx, filepath.Join(dir, "missing.db"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("authors:\n  - id: a1\n    metrics:\n      citations: lots\n"), 0o644))
	_, err = LoadFile(ctx, bad)
	assert.ErrorContains(t, err, "not a number")

	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte("authorz:\n  - id: a1\n    name: X\n"), 0o644))
	_, err = LoadFile(ctx, typo)
	assert.ErrorContains(t, err, "authorz")
}

func TestLoadFileEmptyPathUsesFixture(t *testing.T) {
	d, err := LoadFile(context.Background(), "")
	require.NoError(t, err)
	assert.Same(t, MustLoad(), d)
}
