// Package gamedata provides the embedded encounter table and utilities for loading it.
package gamedata

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS

// FS returns the embedded filesystem containing game data.
func FS() fs.FS {
	return dataFS
}

// Load reads and unmarshals a JSON file from fsys.
func Load[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("read data file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}

	return result, nil
}
