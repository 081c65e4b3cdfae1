// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed fixture.yaml
var fixtureYAML []byte

var (
	fixtureOnce sync.Once
	fixture     *Dataset
	fixtureErr  error
)

// Load returns the embedded reference dataset. It is parsed once and the
// same read-only Dataset is shared by every caller.
func Load() (*Dataset, error) {
	fixtureOnce.Do(func() {
		c, err := decodeYAML(fixtureYAML)
		if err != nil {
			fixtureErr = fmt.Errorf("parsing embedded fixture: %w", err)
			return
		}
		fixture, fixtureErr = New(c)
	})
	return fixture, fixtureErr
}

// MustLoad is Load for callers that treat a broken embedded fixture as a
// programming error, such as tests and package-level defaults.
func MustLoad() *Dataset {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}
