package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
)

// Toxicity-safety phrases per locale family, matched case-insensitively
// against careTips.
var (
	toxicPhrases       = []string{"toxic to pets", "tóxico para mascotas", "对宠物有毒"}
	mildlyToxicPhrases = []string{"mildly toxic", "ligeramente tóxico", "轻微有毒", "gi upset", "malestar gastrointestinal", "肠胃不适"}
	nonToxicPhrases    = []string{"non-toxic", "non-toxic to pets", "not toxic", "no tóxico", "无毒"}
)

// ToxicityAlignment cross-checks plantToxicity metadata against the English
// care tips: toxic plants must warn about pets, mildlyToxic plants must
// mention mild toxicity (or the full warning), and nonToxic plants must not
// claim toxicity. All findings are hard.
func ToxicityAlignment(src *Source) []Finding {
	en := src.Reference()
	if en == nil {
		return nil
	}
	byID := en.ByID()

	var findings []Finding
	for _, id := range src.Meta.IDs() {
		rec := src.Meta.Records[id]
		if rec == nil {
			continue
		}
		toxicity := rec.String("plantToxicity")
		entry := byID[id]
		careTips := strings.TrimSpace(entry.String("careTips"))
		name := entry.String("typeName")
		if name == "" {
			name = id
		}

		switch toxicity {
		case "toxic":
			if !hasPhrase(careTips, toxicPhrases) {
				findings = append(findings, Finding{
					Audit: schema.AuditToxicityAlign, Kind: "missing-toxicity-warning",
					Locale: en.Locale.Code, PlantID: id, Field: "careTips",
					Message:  fmt.Sprintf("%s is toxic but care tips carry no pet-safety warning", name),
					Severity: Hard,
				})
			}
		case "mildlyToxic":
			if !hasPhrase(careTips, mildlyToxicPhrases) && !hasPhrase(careTips, toxicPhrases) {
				findings = append(findings, Finding{
					Audit: schema.AuditToxicityAlign, Kind: "missing-toxicity-warning",
					Locale: en.Locale.Code, PlantID: id, Field: "careTips",
					Message:  fmt.Sprintf("%s is mildly toxic but care tips carry no toxicity mention", name),
					Severity: Hard,
				})
			}
		case "nonToxic":
			claimsToxic := hasPhrase(careTips, toxicPhrases) || hasPhrase(careTips, mildlyToxicPhrases)
			if claimsToxic && !hasPhrase(careTips, nonToxicPhrases) {
				findings = append(findings, Finding{
					Audit: schema.AuditToxicityAlign, Kind: "toxicity-mismatch",
					Locale: en.Locale.Code, PlantID: id, Field: "careTips",
					Message:  fmt.Sprintf("%s: metadata says nonToxic but care tips mention toxicity", name),
					Severity: Hard,
				})
			}
		}
	}
	return findings
}

func hasPhrase(text string, phrases []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// UnknownEntry is one plant whose toxicity has not been researched yet.
type UnknownEntry struct {
	ID             string `json:"id"`
	CommonExamples string `json:"commonExamples"`
}

// UnknownReport groups plants with plantToxicity "unknown" by category, the
// working list for ASPCA lookups. Informational, never fails a run.
type UnknownReport struct {
	Total      int                       `json:"totalUnknown"`
	ByCategory map[string][]UnknownEntry `json:"byCategory"`
}

// UnknownToxicity builds the unknown-toxicity research list, optionally
// filtered to one category.
func UnknownToxicity(src *Source, category string) *UnknownReport {
	examplesByID := make(map[string]string)
	if en := src.Reference(); en != nil {
		for _, e := range en.Entries {
			examplesByID[e.ID()] = e.String("commonExamples")
		}
	}

	report := &UnknownReport{ByCategory: make(map[string][]UnknownEntry)}
	for _, id := range src.Meta.IDs() {
		rec := src.Meta.Records[id]
		if rec == nil || rec.String("plantToxicity") != "unknown" {
			continue
		}
		cat := rec.String("category")
		if category != "" && cat != category {
			continue
		}
		report.Total++
		report.ByCategory[cat] = append(report.ByCategory[cat], UnknownEntry{
			ID:             id,
			CommonExamples: examplesByID[id],
		})
	}
	for cat := range report.ByCategory {
		entries := report.ByCategory[cat]
		sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	}
	return report
}
