package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// SyncOptions control the translation-sync audit.
type SyncOptions struct {
	// CheckTypeNames additionally flags ES/ZH display names identical to the
	// English one, a common sign of untranslated entries. Advisory because
	// some names genuinely have no translation (Tulsi, Kangkong).
	CheckTypeNames bool
}

// Sync verifies the three locales stay in step: every English id exists in
// the other locales, and no locale has an empty typeName, description, or
// careTips. Both are hard findings.
func Sync(src *Source, opts SyncOptions) []Finding {
	en := src.Reference()
	if en == nil {
		return nil
	}

	var findings []Finding
	enByID := en.ByID()
	enIDs := make([]string, 0, len(enByID))
	for id := range enByID {
		enIDs = append(enIDs, id)
	}
	sort.Strings(enIDs)

	for _, lang := range src.Langs {
		if lang.Locale.Code == en.Locale.Code {
			continue
		}
		byID := lang.ByID()
		for _, id := range enIDs {
			if _, ok := byID[id]; !ok {
				findings = append(findings, Finding{
					Audit: schema.AuditSync, Kind: "missing-translation",
					Locale: lang.Locale.Code, PlantID: id,
					Message:  fmt.Sprintf("present in en but missing in %s", lang.Locale.Code),
					Severity: Hard,
				})
			}
		}
	}

	for _, lang := range src.Langs {
		byID := lang.ByID()
		for _, id := range enIDs {
			e, ok := byID[id]
			if !ok {
				continue
			}
			for _, field := range schema.RequiredLanguageFields {
				if strings.TrimSpace(e.String(field)) != "" {
					continue
				}
				findings = append(findings, Finding{
					Audit: schema.AuditSync, Kind: "empty-field",
					Locale: lang.Locale.Code, PlantID: id, Field: field,
					Message:  fmt.Sprintf("empty %s", field),
					Severity: Hard,
				})
			}
		}
	}

	if opts.CheckTypeNames {
		findings = append(findings, untranslatedTypeNames(src, enIDs, enByID)...)
	}
	return findings
}

func untranslatedTypeNames(src *Source, enIDs []string, enByID map[string]store.Record) []Finding {
	var findings []Finding
	for _, lang := range src.Langs {
		if lang.Locale.Code == schema.ReferenceLocale().Code {
			continue
		}
		byID := lang.ByID()
		for _, id := range enIDs {
			e, ok := byID[id]
			if !ok {
				continue
			}
			enName := enByID[id].String("typeName")
			if enName == "" || e.String("typeName") != enName {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditSync, Kind: "untranslated-typename",
				Locale: lang.Locale.Code, PlantID: id, Field: "typeName",
				Message:  fmt.Sprintf("typeName %q matches en (possibly untranslated)", enName),
				Severity: Advisory,
			})
		}
	}
	return findings
}
