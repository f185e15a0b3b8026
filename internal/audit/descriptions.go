package audit

import (
	"fmt"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// genericPatterns are placeholder phrases left over from bulk imports; any
// description containing one needs species-specific text. Keyed by short
// locale code ("zh" covers zh-Hans).
var genericPatterns = []struct {
	locale  string
	pattern string
}{
	{"en", "Common plant for gardens, farms, or indoor spaces."},
	{"en", "Edible plant for kitchen gardens."},
	{"en", "Specialty plant for gardens or collections."},
	{"es", "Planta especial para jardines o colecciones"},
	{"zh", "园艺或收藏用特色植物"},
}

// Descriptions flags placeholder description text, descriptions that do not
// end in terminal punctuation, and descriptions repeated verbatim across
// distinct records in the same locale. All findings are hard.
func Descriptions(src *Source) []Finding {
	var findings []Finding
	for _, lang := range src.Langs {
		findings = append(findings, genericDescriptions(lang)...)
		findings = append(findings, unterminatedDescriptions(lang)...)
		findings = append(findings, copiedDescriptions(lang)...)
	}
	return findings
}

func shortLocale(code string) string {
	if code == "zh-Hans" {
		return "zh"
	}
	return code
}

func genericDescriptions(lang *store.LanguageStore) []Finding {
	key := shortLocale(lang.Locale.Code)
	var findings []Finding
	for _, e := range lang.Entries {
		desc := e.String("description")
		for _, p := range genericPatterns {
			if p.locale != key || !strings.Contains(desc, p.pattern) {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditDescriptions, Kind: "generic-description",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
				Message:  fmt.Sprintf("placeholder text: %s", truncate(desc, 60)),
				Severity: Hard,
			})
			break
		}
	}
	return findings
}

func unterminatedDescriptions(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		desc := strings.TrimSpace(e.String("description"))
		if desc == "" || strings.HasSuffix(desc, ".") || strings.HasSuffix(desc, "。") ||
			strings.HasSuffix(desc, "!") || strings.HasSuffix(desc, "！") {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditDescriptions, Kind: "unterminated-description",
			Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
			Message:  fmt.Sprintf("description does not end in terminal punctuation: ...%s", tail(desc, 30)),
			Severity: Hard,
		})
	}
	return findings
}

func copiedDescriptions(lang *store.LanguageStore) []Finding {
	byDesc := make(map[string][]string)
	var order []string
	for _, e := range lang.Entries {
		desc := strings.TrimSpace(e.String("description"))
		if desc == "" {
			continue
		}
		if len(byDesc[desc]) == 0 {
			order = append(order, desc)
		}
		byDesc[desc] = append(byDesc[desc], e.ID())
	}

	var findings []Finding
	for _, desc := range order {
		ids := byDesc[desc]
		if len(ids) < 2 {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditDescriptions, Kind: "copied-description",
			Locale: lang.Locale.Code, PlantID: ids[0], Field: "description",
			Message:  fmt.Sprintf("identical description shared by %s", strings.Join(ids, ", ")),
			Severity: Hard,
		})
	}
	return findings
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
