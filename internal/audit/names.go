package audit

import (
	"fmt"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// oldScientificNames maps superseded binomials to their accepted form.
// Sansevieria was merged into Dracaena (Asparagaceae), succulent Senecio
// species moved to Curio, and Alocasia amazonica is a hybrid that wants the
// × marker.
var oldScientificNames = []struct {
	old       string
	suggested string
}{
	{"Sansevieria trifasciata", "Dracaena trifasciata (syn. Sansevieria trifasciata)"},
	{"Sansevieria cylindrica", "Dracaena angolensis (syn. Sansevieria cylindrica)"},
	{"Senecio rowleyanus", "Curio rowleyanus (syn. Senecio rowleyanus)"},
	{"Senecio radicans", "Curio radicans (syn. Senecio radicans)"},
	{"Senecio × peregrinus", "Curio × peregrinus (syn. Senecio × peregrinus)"},
	{"Senecio serpens", "Curio repens (syn. Senecio serpens)"},
	{"Senecio mandraliscae", "Curio talinoides subsp. mandraliscae (syn. Senecio mandraliscae)"},
	{"Alocasia amazonica ", "Alocasia × amazonica "},
	{"Dracaena cylindrica", "Dracaena angolensis (syn. Sansevieria cylindrica)"},
}

// Names flags outdated scientific names in commonExamples. A name cited as a
// synonym ("syn. Sansevieria trifasciata") is fine; a name used as the
// primary binomial is not. Findings are deduplicated across locales by
// id and issue. All findings are hard.
func Names(src *Source) []Finding {
	var findings []Finding
	seen := make(map[string]struct{})
	for _, lang := range src.Langs {
		for _, f := range namesInStore(lang) {
			key := f.PlantID + "\x00" + f.Message
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			findings = append(findings, f)
		}
	}
	return findings
}

func namesInStore(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		examples := e.String("commonExamples")
		if examples == "" {
			continue
		}
		for _, rule := range oldScientificNames {
			if !strings.Contains(examples, rule.old) {
				continue
			}
			if acceptedFormPresent(examples, rule.suggested) {
				continue
			}
			if synonymContext(examples, rule.old) {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditNames, Kind: "outdated-name",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: "commonExamples",
				Message:  fmt.Sprintf("contains '%s'; use %s", strings.TrimSpace(rule.old), rule.suggested),
				Severity: Hard,
			})
		}
	}
	return findings
}

// acceptedFormPresent reports whether the corrected binomial already appears,
// in which case the old name is presumably the synonym citation.
func acceptedFormPresent(examples, suggested string) bool {
	correct := suggested
	if i := strings.Index(correct, "("); i >= 0 {
		correct = correct[:i]
	}
	correct = strings.TrimSpace(correct)
	return strings.Contains(examples, correct) || strings.Contains(examples, "× amazonica")
}

// synonymContext reports whether the old name sits near a "syn." marker.
func synonymContext(examples, old string) bool {
	if !strings.Contains(examples, "syn.") {
		return false
	}
	idx := strings.Index(examples, old)
	if idx <= 0 {
		return false
	}
	start := idx - 50
	if start < 0 {
		start = 0
	}
	end := idx + len(old) + 20
	if end > len(examples) {
		end = len(examples)
	}
	return strings.Contains(examples[start:end], "syn.")
}
