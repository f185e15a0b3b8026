// Package store reads and writes the source stores (one metadata file, one
// language file per locale) and knows the dataset's on-disk layout.
//
// Records are decoded loosely into maps so that a wrong enum value or a
// string where a number belongs surfaces as a validation issue, not a decode
// failure. Only malformed JSON or the wrong container type is an error here.
package store

import (
	"fmt"
	"path/filepath"

	"github.com/plantfolio/plantkit/internal/schema"
)

// Record is one plant's fields as decoded from JSON. Values follow
// encoding/json's defaults: string, float64, bool, nil, []any, map[string]any.
type Record map[string]any

// ID returns the record's identifier, or "" if absent or not a string.
func (r Record) ID() string {
	s, _ := r["id"].(string)
	return s
}

// String returns a string field, or "" if absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Dataset locates the stores and generated files under a dataset root.
type Dataset struct {
	Root string
}

// SourceDir is where the hand-maintained stores live.
func (d Dataset) SourceDir() string { return filepath.Join(d.Root, "source") }

// DistDir is where merged files are written.
func (d Dataset) DistDir() string { return filepath.Join(d.Root, "dist") }

// MetadataPath is the locale-independent store.
func (d Dataset) MetadataPath() string {
	return filepath.Join(d.SourceDir(), schema.MetadataFile)
}

// LanguagePath is the source store for one locale.
func (d Dataset) LanguagePath(l schema.Locale) string {
	return filepath.Join(d.SourceDir(), l.SourceFile)
}

// DistPath is the merged output file for one locale.
func (d Dataset) DistPath(l schema.Locale) string {
	return filepath.Join(d.DistDir(), l.DistName+".json")
}

// ManifestPath is the optional check-manifest override.
func (d Dataset) ManifestPath() string {
	return filepath.Join(d.SourceDir(), "checks.yaml")
}

// StateDir holds derived state (the record index). Safe to delete.
func (d Dataset) StateDir() string { return filepath.Join(d.Root, ".plantkit") }

// StructuralError marks a store file the run cannot proceed past: not valid
// JSON, or not the expected container type.
type StructuralError struct {
	Path string
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error { return e.Err }
