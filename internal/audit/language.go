package audit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

var (
	cjkRe = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)

	// English common names in parens inside zh commonExamples, e.g.
	// "(Golden Pothos)". Scientific names are lowercase-species so they do
	// not match; cultivar quotes are excluded separately.
	engCommonRe = regexp.MustCompile(`\([A-Z][a-z]+(?:\s+[a-z]+)*\)`)
)

// englishPhrasesZH and englishPhrasesES are untranslated-content tells,
// matched case-insensitively. Grown from review passes, not exhaustive.
var englishPhrasesZH = []string{
	"also known as", "common indoor plant", "common houseplant",
	"water when", "bright indirect", "low light", "medium humidity",
	"toxic to pets", "non-toxic", "fertilize monthly", "spring through fall",
	"black velvet", "purple shamrock", "baby rubber",
	"pink allusion", "string of", "mother-in-law", "peace lily",
}

var englishPhrasesES = []string{
	"also known as", "common indoor plant", "popular indoor plant",
	"black velvet", "purple shamrock", "baby rubber",
	"sweet basil", "genovese basil", "thai basil", "holy basil",
	"chinese spinach", "japanese mustard", "ceylon spinach",
	"common purslane", "chinese varieties", "rosette bok choy",
}

// parenAllowList names parenthesized snippets in zh commonExamples that are
// descriptive, not untranslated common names.
var parenAllowList = map[string]struct{}{
	"(leaf and stem)": {},
	"(edible greens)": {},
	"(goeppertia)":    {},
}

var auditedTextFields = []string{"typeName", "description", "commonExamples", "careTips"}

// Language checks each store for text outside its declared locale: CJK
// script in en/es, untranslated English common names in zh commonExamples,
// and known English phrases in es/zh. All findings are hard.
func Language(src *Source) []Finding {
	var findings []Finding
	for _, lang := range src.Langs {
		if lang.Locale.CJK {
			findings = append(findings, englishInZH(lang)...)
			findings = append(findings, englishPhrases(lang, englishPhrasesZH)...)
			continue
		}
		findings = append(findings, cjkInLatin(lang)...)
		if lang.Locale.Code == "es" {
			findings = append(findings, englishPhrases(lang, englishPhrasesES)...)
		}
	}
	return findings
}

func cjkInLatin(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		for _, field := range auditedTextFields {
			val := e.String(field)
			loc := cjkRe.FindStringIndex(val)
			if loc == nil {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditLanguage, Kind: "cjk",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: field,
				Message:  fmt.Sprintf("CJK text in %s file: %s", lang.Locale.Code, snippet(val, loc[0], 20)),
				Severity: Hard,
			})
			break
		}
	}
	return findings
}

func englishInZH(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		val := e.String("commonExamples")
		// Cultivar names in quotes legitimately stay untranslated.
		if strings.Contains(val, "'") && strings.Contains(val, "(") {
			continue
		}
		for _, m := range engCommonRe.FindAllString(val, -1) {
			if cjkRe.MatchString(m) {
				continue
			}
			if _, ok := parenAllowList[strings.ToLower(m)]; ok {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditLanguage, Kind: "english-common-name",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: "commonExamples",
				Message:  fmt.Sprintf("English common name in zh commonExamples: %s", truncate(val, 80)),
				Severity: Hard,
			})
			break
		}
	}
	return findings
}

func englishPhrases(lang *store.LanguageStore, phrases []string) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		for _, field := range auditedTextFields {
			val := e.String(field)
			if val == "" {
				continue
			}
			lower := strings.ToLower(val)
			for _, phrase := range phrases {
				if !strings.Contains(lower, phrase) {
					continue
				}
				findings = append(findings, Finding{
					Audit: schema.AuditLanguage, Kind: "english-phrase",
					Locale: lang.Locale.Code, PlantID: e.ID(), Field: field,
					Message:  fmt.Sprintf("untranslated English phrase %q", phrase),
					Severity: Hard,
				})
				break
			}
		}
	}
	return findings
}

func snippet(s string, at, radius int) string {
	start := at - radius
	if start < 0 {
		start = 0
	}
	end := at + radius
	if end > len(s) {
		end = len(s)
	}
	// Clamp to rune boundaries so we never split a multibyte character.
	for start > 0 && !utf8RuneStart(s[start]) {
		start--
	}
	for end < len(s) && !utf8RuneStart(s[end]) {
		end++
	}
	return "..." + s[start:end] + "..."
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
