// Package testutil provides reusable fixtures for plantkit tests: a
// temporary-dataset builder plus file assertions.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// TestDataset builds a temporary dataset directory with a metadata store and
// per-locale language stores. Call Build() to materialize it on disk.
type TestDataset struct {
	Root string
	t    *testing.T

	version  string
	ids      []string
	metadata map[string]map[string]any
	lang     map[string][]map[string]any
	files    map[string]string
}

// NewTestDataset creates a new dataset builder.
func NewTestDataset(t *testing.T) *TestDataset {
	t.Helper()
	return &TestDataset{
		t:        t,
		version:  "1.0.0",
		metadata: make(map[string]map[string]any),
		lang:     make(map[string][]map[string]any),
		files:    make(map[string]string),
	}
}

// WithVersion sets the header version written to every store.
func (d *TestDataset) WithVersion(v string) *TestDataset {
	d.version = v
	return d
}

// WithMetadata adds one metadata record.
func (d *TestDataset) WithMetadata(id string, rec map[string]any) *TestDataset {
	if _, ok := d.metadata[id]; !ok {
		d.ids = append(d.ids, id)
	}
	d.metadata[id] = rec
	return d
}

// WithLanguage appends one language entry for the given locale code.
func (d *TestDataset) WithLanguage(code string, rec map[string]any) *TestDataset {
	d.lang[code] = append(d.lang[code], rec)
	return d
}

// WithPlant adds a fully valid plant: one metadata record plus a language
// entry in every locale, with display names derived from the id.
func (d *TestDataset) WithPlant(id string) *TestDataset {
	d.WithMetadata(id, ValidMetadata())
	for _, loc := range schema.Locales {
		d.WithLanguage(loc.Code, LanguageEntry(id, loc.Code))
	}
	return d
}

// WithFile adds an arbitrary file relative to the dataset root, e.g. a
// source/checks.yaml manifest.
func (d *TestDataset) WithFile(path, content string) *TestDataset {
	d.files[path] = content
	return d
}

// Build creates the dataset directory and writes all configured stores.
func (d *TestDataset) Build() *TestDataset {
	d.t.Helper()
	d.Root = d.t.TempDir()

	meta := map[string]any{
		"_metadata": map[string]any{
			"version":    d.version,
			"plantCount": len(d.ids),
		},
	}
	for id, rec := range d.metadata {
		meta[id] = rec
	}
	d.writeJSON(filepath.Join("source", schema.MetadataFile), meta)

	for _, loc := range schema.Locales {
		entries, ok := d.lang[loc.Code]
		if !ok {
			continue
		}
		arr := []any{map[string]any{
			"_metadata": map[string]any{
				"version":    d.version,
				"plantCount": len(entries),
				"sorting":    map[string]any{"categories": TranslatedCategories(loc.Code)},
			},
		}}
		for _, e := range entries {
			arr = append(arr, e)
		}
		d.writeJSON(filepath.Join("source", loc.SourceFile), arr)
	}

	for path, content := range d.files {
		d.writeFile(path, []byte(content))
	}
	return d
}

// Dataset returns the store handle for the built dataset.
func (d *TestDataset) Dataset() store.Dataset {
	return store.Dataset{Root: d.Root}
}

func (d *TestDataset) writeJSON(relPath string, v any) {
	d.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		d.t.Fatalf("marshal %s: %v", relPath, err)
	}
	d.writeFile(relPath, append(data, '\n'))
}

func (d *TestDataset) writeFile(relPath string, data []byte) {
	d.t.Helper()
	fullPath := filepath.Join(d.Root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		d.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		d.t.Fatalf("failed to write file %s: %v", relPath, err)
	}
}

// ReadFile reads a file relative to the dataset root.
func (d *TestDataset) ReadFile(relPath string) string {
	d.t.Helper()
	content, err := os.ReadFile(filepath.Join(d.Root, relPath))
	if err != nil {
		d.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists relative to the dataset root.
func (d *TestDataset) FileExists(relPath string) bool {
	d.t.Helper()
	_, err := os.Stat(filepath.Join(d.Root, relPath))
	return err == nil
}

// ValidMetadata returns a metadata record that passes every schema check:
// a low-maintenance houseplant with sensible intervals.
func ValidMetadata() map[string]any {
	return map[string]any{
		"springInterval":        7,
		"summerInterval":        5,
		"fallInterval":          10,
		"winterInterval":        14,
		"lightPreference":       "brightIndirect",
		"humidityPreference":    "medium",
		"temperaturePreference": []any{18, 29},
		"plantToxicity":         "nonToxic",
		"soilPhPreference":      "neutral",
		"drainagePreference":    "wellDraining",
		"wateringMethod":        "topWatering",
		"plantLifeSpan":         []any{5, 10},
		"category":              "Houseplants - Low Maintenance",
	}
}

// LanguageEntry returns a complete language record for id in the given
// locale, with locale-tagged placeholder text. The zh-Hans entry is written
// in Chinese so defaults pass the target-language audit.
func LanguageEntry(id, code string) map[string]any {
	if code == "zh-Hans" {
		return map[string]any{
			"id":             id,
			"typeName":       "植物 " + id,
			"description":    "关于 " + id + " 的描述。",
			"commonExamples": "Exemplum " + id + "（示例）",
			"careTips":       "保持土壤微润，避免强光直射。",
		}
	}
	tag := ""
	if code != "en" {
		tag = " [" + code + "]"
	}
	return map[string]any{
		"id":             id,
		"typeName":       "Name " + id + tag,
		"description":    "A healthy description of " + id + tag + ".",
		"commonExamples": "Exemplum " + id + " (Common " + id + ")",
		"careTips":       "Water when the top inch of soil is dry" + tag + ".",
	}
}

// TranslatedCategories returns a positional category list for a locale:
// English gets the canonical list, other locales a tagged copy so tests can
// verify positional translation.
func TranslatedCategories(code string) []any {
	out := make([]any, len(schema.CategoryOrder))
	for i, c := range schema.CategoryOrder {
		if code == "en" {
			out[i] = c
		} else {
			out[i] = "[" + code + "] " + c
		}
	}
	return out
}
