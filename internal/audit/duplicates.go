package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/slugs"
	"github.com/plantfolio/plantkit/internal/store"
)

// knownAmbiguousPairs are id pairs that repeatedly come up in consolidation
// reviews. They get a standing advisory so nobody rediscovers them.
var knownAmbiguousPairs = [][2]string{
	{"rhipsalis", "rhipsalis-baccifera"},
	{"philodendron-heartleaf", "philodendron-brasil"},
}

// Duplicates looks for entries that may describe the same plant twice:
// identical display names within a locale (hard), dash-boundary id prefix
// overlap, known ambiguous pairs, and substring display names (all advisory).
func Duplicates(src *Source) []Finding {
	var findings []Finding

	for _, lang := range src.Langs {
		findings = append(findings, duplicateTypeNames(lang)...)
	}

	en := src.Reference()
	if en == nil {
		return findings
	}
	findings = append(findings, idPrefixOverlaps(en)...)
	findings = append(findings, knownPairs(en)...)
	findings = append(findings, similarTypeNames(en)...)
	return findings
}

func duplicateTypeNames(lang *store.LanguageStore) []Finding {
	byName := make(map[string][]string)
	var order []string
	for _, e := range lang.Entries {
		tn := strings.TrimSpace(e.String("typeName"))
		if tn == "" {
			continue
		}
		if len(byName[tn]) == 0 {
			order = append(order, tn)
		}
		byName[tn] = append(byName[tn], e.ID())
	}

	var findings []Finding
	for _, tn := range order {
		ids := byName[tn]
		if len(ids) < 2 {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditDuplicates, Kind: "duplicate-typename",
			Locale: lang.Locale.Code, PlantID: ids[0], Field: "typeName",
			Message:  fmt.Sprintf("typeName %q used by %s", tn, strings.Join(ids, ", ")),
			Severity: Hard,
		})
	}
	return findings
}

func idPrefixOverlaps(en *store.LanguageStore) []Finding {
	byID := en.ByID()
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var findings []Finding
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			if !slugs.SharesPrefix(a, b) {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditDuplicates, Kind: "id-overlap",
				Locale: en.Locale.Code, PlantID: a,
				Message: fmt.Sprintf("%s (%s) vs %s (%s) may be genus/species duplicates",
					a, byID[a].String("typeName"), b, byID[b].String("typeName")),
				Severity: Advisory,
			})
		}
	}
	return findings
}

func knownPairs(en *store.LanguageStore) []Finding {
	byID := en.ByID()
	var findings []Finding
	for _, pair := range knownAmbiguousPairs {
		a, okA := byID[pair[0]]
		b, okB := byID[pair[1]]
		if !okA || !okB {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditDuplicates, Kind: "known-pair",
			Locale: en.Locale.Code, PlantID: pair[0],
			Message: fmt.Sprintf("review %s (%s) against %s (%s)",
				pair[0], truncate(a.String("commonExamples"), 60),
				pair[1], truncate(b.String("commonExamples"), 60)),
			Severity: Advisory,
		})
	}
	return findings
}

func similarTypeNames(en *store.LanguageStore) []Finding {
	type named struct{ id, name string }
	var names []named
	for _, e := range en.Entries {
		if tn := e.String("typeName"); tn != "" {
			names = append(names, named{e.ID(), tn})
		}
	}

	var findings []Finding
	for i, a := range names {
		for _, b := range names[i+1:] {
			if a.name == b.name {
				continue
			}
			if !strings.Contains(a.name, b.name) && !strings.Contains(b.name, a.name) {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditDuplicates, Kind: "similar-typename",
				Locale: en.Locale.Code, PlantID: a.id, Field: "typeName",
				Message:  fmt.Sprintf("%q (%s) vs %q (%s)", a.name, a.id, b.name, b.id),
				Severity: Advisory,
			})
		}
	}
	return findings
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
