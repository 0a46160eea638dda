// Package form persists the input form across sessions. The snapshot is a
// one-way mirror of the live fields: written on every change, read exactly
// once at startup, and never a source of truth while the app is running.
package form

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/studiowebux/extractcli/internal/config"
	"github.com/studiowebux/extractcli/internal/types"
)

// Store reads and writes the form snapshot at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given snapshot file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save serializes the snapshot to disk.
func (s *Store) Save(snapshot types.FormSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize form snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write form snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A missing or malformed file yields
// (nil, false): corrupt data is logged and discarded, never propagated.
func (s *Store) Load() (*types.FormSnapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var snapshot types.FormSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Printf("discarding malformed form snapshot %s: %v", s.path, err)
		return nil, false
	}

	return &snapshot, true
}

// Apply restores stored values onto current field values. Only non-empty
// stored fields overwrite; empty ones leave the current defaults untouched.
func Apply(snapshot *types.FormSnapshot, apiKey, query, format *string) {
	if snapshot == nil {
		return
	}
	if snapshot.APIKey != "" {
		*apiKey = snapshot.APIKey
	}
	if snapshot.Query != "" {
		*query = snapshot.Query
	}
	if snapshot.Format != "" {
		*format = snapshot.Format
	}
}
