package audit

import (
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// A record's typeName is either a nickname ("Snake Plant") or a formal name
// ("Dracaena trifasciata" style, or the first-segment formal from
// commonExamples). The aka block should carry the complement: nickname
// typeNames get the formal name, formal typeNames get the nicknames.

// AkaChange is one planned description rewrite.
type AkaChange struct {
	Locale   string
	PlantID  string
	Value    string // the new aka value
	Nickname bool   // typeName was classified as a nickname
	Old      string
	New      string
}

// PlanComplementaryAka computes the description rewrites that would give
// every record a complementary aka block. Pure; nothing is written.
func PlanComplementaryAka(src *Source) []AkaChange {
	var changes []AkaChange
	for _, lang := range src.Langs {
		for _, e := range lang.Entries {
			if change, ok := planEntry(e, lang.Locale); ok {
				changes = append(changes, change)
			}
		}
	}
	return changes
}

// ApplyComplementaryAka applies the planned rewrites and saves every store
// that changed. Running it twice is a no-op: the second plan comes up empty.
func ApplyComplementaryAka(src *Source) (int, error) {
	total := 0
	for _, lang := range src.Langs {
		changed := 0
		for _, e := range lang.Entries {
			change, ok := planEntry(e, lang.Locale)
			if !ok {
				continue
			}
			e["description"] = change.New
			changed++
		}
		if changed == 0 {
			continue
		}
		if err := lang.Save(); err != nil {
			return total, err
		}
		total += changed
	}
	return total, nil
}

func planEntry(e store.Record, loc schema.Locale) (AkaChange, bool) {
	description := e.String("description")
	typeName := e.String("typeName")
	segments := parseSegments(e.String("commonExamples"))
	if len(segments) == 0 {
		return AkaChange{}, false
	}

	value, nickname := complementaryValue(typeName, segments)
	if value == "" {
		return AkaChange{}, false
	}

	base := stripAliasBlock(description, loc)
	if base != "" && !strings.HasSuffix(base, ".") && !strings.HasSuffix(base, "。") && !strings.HasSuffix(base, "!") {
		base += "."
	}
	newDesc := buildAliasBlock(value, loc)
	if base != "" {
		newDesc += " " + base
	}
	if newDesc == description {
		return AkaChange{}, false
	}
	return AkaChange{
		Locale:   loc.Code,
		PlantID:  e.ID(),
		Value:    value,
		Nickname: nickname,
		Old:      description,
		New:      newDesc,
	}, true
}

// complementaryValue derives the aka value from the first commonExamples
// segment. A typeName matching an alias is a nickname, so the complement is
// the formal name; otherwise the complement is the alias list with
// redundant and scientific entries removed.
func complementaryValue(typeName string, segments []akaSegment) (string, bool) {
	first := segments[0]
	typeLower := strings.ToLower(typeName)

	for _, a := range first.Aliases {
		if strings.ToLower(a) == typeLower {
			return first.Formal, true
		}
	}

	var filtered []string
	for _, a := range first.Aliases {
		al := strings.ToLower(a)
		if al == typeLower || strings.Contains(al, typeLower) || strings.Contains(typeLower, al) {
			continue
		}
		if looksScientific(a) {
			continue
		}
		if _, generic := excludeGeneric[al]; generic {
			continue
		}
		filtered = append(filtered, a)
	}
	return strings.Join(filtered, ", "), false
}
