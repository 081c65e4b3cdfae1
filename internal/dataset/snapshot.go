// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadFile reads a dataset snapshot, choosing the format by extension:
// .yaml/.yml for YAML and .db/.sqlite for SQLite. An empty path returns the
// embedded fixture.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	if path == "" {
		return Load()
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported dataset file %q: use .yaml, .yml, or .db", path)
	}
}

// LoadYAML reads a YAML snapshot written by WriteYAML or authored by hand
// in the same shape as the embedded fixture.
func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	c, err := decodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset file %s: %w", path, err)
	}
	return New(c)
}

// WriteYAML saves d as a YAML snapshot.
func (d *Dataset) WriteYAML(path string) error {
	c := d.Contents()
	data, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// decodeYAML rejects keys the snapshot shape does not declare, so a
// misspelled collection is a load error rather than an empty collection.
func decodeYAML(data []byte) (Contents, error) {
	var c Contents
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Contents{}, err
	}
	return c, nil
}
