// Package audit implements the content-quality heuristics that run over the
// source stores: duplicate and overlapping names, placeholder descriptions,
// translation-sync gaps, target-language purity, outdated scientific names,
// alias ("also known as") consistency, and toxicity/care-tip alignment.
//
// Audits are heuristic by nature. Findings are either hard (the audit fails)
// or advisory (worth a look, never fails a release); see each auditor for
// which is which.
package audit

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// Severity classifies a finding.
type Severity int

const (
	// Advisory findings are review prompts; they never fail a run.
	Advisory Severity = iota
	// Hard findings fail the audit that produced them.
	Hard
)

func (s Severity) String() string {
	if s == Hard {
		return "hard"
	}
	return "advisory"
}

// Finding is one audit observation about one record (or a pair of records).
type Finding struct {
	Audit    string // manifest ID, e.g. "A1"
	Kind     string // auditor-specific kind, e.g. "duplicate-typename"
	Locale   string
	PlantID  string
	Field    string
	Message  string
	Severity Severity
}

func (f Finding) String() string {
	loc := f.Locale
	if loc == "" {
		loc = "-"
	}
	return fmt.Sprintf("[%s] %s (%s): %s", f.Kind, f.PlantID, loc, f.Message)
}

// Failed reports whether any finding is hard.
func Failed(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == Hard {
			return true
		}
	}
	return false
}

// Source bundles the loaded stores so each auditor reads the dataset once.
// Language stores whose source file is missing are simply absent.
type Source struct {
	Dataset store.Dataset
	Meta    *store.MetadataStore
	Langs   []*store.LanguageStore
}

// Load reads the metadata store and every present language store.
func Load(ds store.Dataset) (*Source, error) {
	meta, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		return nil, err
	}
	src := &Source{Dataset: ds, Meta: meta}
	for _, loc := range schema.Locales {
		lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		src.Langs = append(src.Langs, lang)
	}
	return src, nil
}

// Lang returns the loaded store for a locale code, or nil.
func (s *Source) Lang(code string) *store.LanguageStore {
	for _, l := range s.Langs {
		if l.Locale.Code == code {
			return l
		}
	}
	return nil
}

// Reference returns the English store, the baseline for cross-locale audits.
func (s *Source) Reference() *store.LanguageStore {
	return s.Lang(schema.ReferenceLocale().Code)
}
