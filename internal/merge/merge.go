// Package merge joins the metadata store with each locale's language store
// into the flattened dist resources that downstream apps consume.
//
// The merge is a pure projection of the source files. Identifiers present on
// only one side are excluded from output and reported as cross-reference
// diagnostics; they fail the run without aborting it, so one bad record never
// blocks the rest of a locale.
package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/plantfolio/plantkit/internal/atomicfile"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// Options control output shape.
type Options struct {
	// Header prepends a _metadata element (version, plantCount, translated
	// category list) to each dist file, for consumers that fetch it over HTTP
	// without a side channel for version info.
	Header bool
}

// Result is the outcome of merging one locale.
type Result struct {
	Locale schema.Locale
	Path   string // dist file written; empty when the source was skipped
	Merged int

	// SourceMissing is set when the locale's language file does not exist.
	// The locale is skipped rather than failing the whole run.
	SourceMissing bool

	// MissingMetadata lists language-store ids with no metadata record;
	// MissingLanguage lists metadata ids absent from this language store.
	// Both exclude the id from output and fail the aggregate.
	MissingMetadata []string
	MissingLanguage []string
}

// Clean reports whether this locale merged without cross-reference gaps.
func (r Result) Clean() bool {
	return !r.SourceMissing && len(r.MissingMetadata) == 0 && len(r.MissingLanguage) == 0
}

// Report aggregates all locales of one merge run.
type Report struct {
	Results []Result
	Total   int // merged records across locales
}

// Clean reports whether every locale merged without diagnostics.
func (r *Report) Clean() bool {
	for _, res := range r.Results {
		if !res.Clean() {
			return false
		}
	}
	return true
}

// Run merges every registered locale. Only a missing or unreadable metadata
// store aborts the run; per-locale problems are collected in the report.
func Run(ds store.Dataset, opts Options) (*Report, error) {
	meta, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(ds.DistDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create dist dir: %w", err)
	}

	report := &Report{}
	for _, loc := range schema.Locales {
		res, err := mergeLocale(ds, loc, meta, opts)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
		report.Total += res.Merged
	}
	return report, nil
}

func mergeLocale(ds store.Dataset, loc schema.Locale, meta *store.MetadataStore, opts Options) (Result, error) {
	res := Result{Locale: loc}

	lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
	if errors.Is(err, fs.ErrNotExist) {
		res.SourceMissing = true
		return res, nil
	}
	if err != nil {
		return res, err
	}

	var translations []string
	if lang.Header != nil {
		translations = lang.Header.Categories
	}

	records := make([]store.Record, 0, len(lang.Entries))
	for _, entry := range lang.Entries {
		id := entry.ID()
		if id == "" {
			continue
		}
		m, ok := meta.Records[id]
		if !ok || m == nil {
			res.MissingMetadata = append(res.MissingMetadata, id)
			continue
		}
		records = append(records, mergeRecord(entry, m, translations))
	}

	// An empty language store has nothing to compare against; it merges to
	// an empty array without cross-reference findings.
	if len(lang.Entries) > 0 {
		langIDs := lang.IDSet()
		for _, id := range meta.IDs() {
			if _, ok := langIDs[id]; !ok {
				res.MissingLanguage = append(res.MissingLanguage, id)
			}
		}
	}

	// Canonical display order: categoryIndex ascending, original order within.
	sort.SliceStable(records, func(i, j int) bool {
		return categoryRank(records[i]) < categoryRank(records[j])
	})

	var out []byte
	if opts.Header {
		header := &store.LanguageHeader{PlantCount: len(records), Categories: translations}
		if meta.Header != nil {
			header.Version = meta.Header.Version
		}
		out, err = store.MarshalRecordsWithHeader(header, records, schema.DistKeyOrder)
	} else {
		out, err = store.MarshalRecords(records, schema.DistKeyOrder)
	}
	if err != nil {
		return res, fmt.Errorf("encode %s: %w", loc.DistName, err)
	}

	res.Path = ds.DistPath(loc)
	if err := atomicfile.WriteFile(res.Path, out, 0o644); err != nil {
		return res, err
	}
	res.Merged = len(records)
	return res, nil
}

// mergeRecord flattens one language entry with its metadata record. The
// category value is replaced by the locale's display name when the header
// carries a translation at the category's position; categoryIndex is always
// appended so consumers can sort without knowing the category list.
func mergeRecord(entry, meta store.Record, translations []string) store.Record {
	merged := make(store.Record, len(entry)+len(meta)+1)
	for k, v := range entry {
		merged[k] = v
	}
	for k, v := range meta {
		merged[k] = v
	}

	if cat, ok := meta["category"].(string); ok {
		idx, known := schema.CategoryIndex(cat)
		if !known {
			idx = len(schema.CategoryOrder)
		} else if idx < len(translations) {
			merged["category"] = translations[idx]
		}
		merged["categoryIndex"] = idx
	}
	return merged
}

func categoryRank(r store.Record) int {
	if v, ok := r["categoryIndex"].(int); ok {
		return v
	}
	return len(schema.CategoryOrder) + 1
}
