package audit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// The "also known as" block is an optional clause at the start of a
// description, delimited per locale by schema.Locale.AkaPhrase/AkaSuffix.
// It must hold common names only: scientific names live in commonExamples,
// and an alias that merely repeats the record's own typeName (or another
// record's) is noise.

// excludeGeneric are alias fragments that are descriptors, not names.
var excludeGeneric = map[string]struct{}{
	"variety": {}, "speckled variety": {}, "杂交": {}, "various": {},
	"var.": {}, "subsp.": {}, "syn.": {}, "hybrid": {}, "híbrido": {},
}

// scientificGenera are single-word genus names that read like common names
// but are Latin.
var scientificGenera = map[string]struct{}{
	"lithops": {}, "phalaenopsis": {}, "graptopetalum": {}, "echeveria": {},
	"sedum": {}, "curio": {}, "haworthia": {}, "aloe": {}, "crassula": {},
	"kalanchoe": {}, "schlumbergera": {}, "epiphyllum": {}, "rhipsalis": {},
	"mammillaria": {}, "opuntia": {}, "astrophytum": {}, "saintpaulia": {},
	"streptocarpus": {}, "goeppertia": {}, "maranta": {}, "ficus": {},
}

// commonFirstWords keeps the binomial matcher from flagging capitalized
// common names ("String of Pearls" is not a genus). Grown empirically from
// the dataset's own vocabulary, English and Spanish both.
var commonFirstWords = wordSet(
	"chinese", "black", "tree", "green", "medicinal", "sweet", "glossy", "red",
	"mirror", "zebra", "grey", "gray", "giant", "moss", "cushion", "pink",
	"african", "violet", "compact", "striped", "corn", "dragon", "madagascar",
	"song", "india", "jamaica", "false", "bamboo", "reed", "cast", "iron",
	"barroom", "variegated", "speckled", "maria", "silver", "bay", "janet",
	"craig", "limelight", "warneckii", "domino", "sensation", "spotted",
	"leopard", "fancy", "arrow", "leaf", "angel", "wing", "heart", "elephant",
	"ear", "taro", "fish", "bone", "hen", "chick", "mother", "baby", "ghost",
	"pearl", "string", "pearls", "banana", "dolphin", "burro", "tail",
	"bleeding", "wax", "golden", "confederate", "jasmine", "coral", "trumpet",
	"cape", "primrose", "flaming", "katy", "purple", "shamrock", "emerald",
	"ripple", "natal", "plum", "lacy", "split", "sword", "mini", "miniature",
	"watermelon", "oval", "allusion", "rabbit", "foot", "bird", "nest",
	"button", "fern", "kangaroo", "paw", "maidenhair", "staghorn", "crest",
	"flame", "pencil", "barrel", "bun", "easter", "lily", "christmas",
	"thanksgiving", "crab", "claw", "moon", "chin", "star", "mistletoe",
	"rainbow", "lady", "slipper", "painted", "tongue", "lipstick",
	"lucky", "arabian", "coffee", "peacock", "cathedral", "window", "medallion",
	"rattlesnake", "prayer", "nerve", "moselike", "cloud", "brasil", "inch",
	"wandering", "jew", "spider", "paradise", "juniper", "coleus", "croton",
	"money", "swiss", "cheese", "terciopelo", "planta",
	"espejo", "cobre", "negro", "verde", "polly", "máscara", "mask",
	"poppy", "summer", "duck", "garden", "lace", "plumosa", "reina",
	"flamingo", "flower", "flor", "flamenco", "houseleek",
	"frijol", "helecho", "palmera", "pluma", "cola", "serpiente",
	"cadena", "perlas", "plátanos", "delfines", "cactus", "navidad",
	"pascua", "nopal", "oreja", "elefante", "mascara", "azuki", "rojo",
	"blanco", "azul", "dorado",
	"new", "england", "airplane", "ribbon", "zonal", "wine", "curly", "fishbone",
	"arum", "moth", "white", "genovesa", "dulce", "japonesa", "ocupada",
	"jardín", "inglesa", "europea", "manojo", "lengua", "suegra",
	"crane", "gloriosa", "lime", "wild", "elkhorn", "turtle", "zanzibar", "eternity",
	"hope",
	"listada", "margarita", "enredadera", "tortuga", "pachysandra",
	"english", "albahaca", "pimiento", "camelia", "impatiens", "lizzie", "lavanda",
	"cebolla", "nabo", "yucca", "pera", "dracaena",
	"pak", "mosaic", "oyster", "mexican", "breadfruit", "espada", "plateada",
	"amor", "hombre", "spiderwort", "blanket",
	"common", "small", "large", "great", "lenten", "pincushion", "bee",
	"rose", "rosa", "trailing", "wavyleaf", "cider", "nagoya", "broad", "night",
	"hoary", "ruby", "ornamental", "bearded", "yellow", "tulip",
	"amazon", "victoria", "albany", "devil", "hay", "old", "man",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	binomialRe    = regexp.MustCompile(`\b([A-Z][a-z]+)\s+([a-z]+(?:\s+[a-z]+)?)\b`)
	cultivarRe    = regexp.MustCompile(`['"]([^'"]+)['"]`)
	abbrevRe      = regexp.MustCompile(`\b[A-Z]\.\s*[a-z]+`)
	synMarkerRe   = regexp.MustCompile(`(?i)\bsyn\.\s`)
	segmentRe     = regexp.MustCompile(`([^(]+)\s*\(([^)]+)\)`)
	doubleStopRe  = regexp.MustCompile(`\.\s*\.`)
	leadingStopRe = regexp.MustCompile(`^\s*\.\s*`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
)

// looksScientific reports whether an alias fragment is taxonomy rather than
// a common name: a Latin binomial, a quoted cultivar, an abbreviated genus,
// a taxon marker, or a bare genus name.
func looksScientific(value string) bool {
	val := strings.TrimSpace(value)
	if val == "" {
		return false
	}
	if synMarkerRe.MatchString(val) || strings.Contains(val, "同义名") {
		return true
	}
	for _, m := range binomialRe.FindAllStringSubmatch(val, -1) {
		if _, common := commonFirstWords[strings.ToLower(m[1])]; !common {
			return true
		}
	}
	if cultivarRe.MatchString(val) && strings.IndexFunc(val, isLowercaseLetter) >= 0 {
		return true
	}
	for _, marker := range []string{"var.", "subsp.", "subspecies", "×"} {
		if strings.Contains(val, marker) {
			return true
		}
	}
	words := strings.Fields(val)
	if len(words) == 1 {
		if _, ok := scientificGenera[strings.ToLower(words[0])]; ok {
			return true
		}
	}
	return abbrevRe.MatchString(val)
}

func isLowercaseLetter(r rune) bool { return r >= 'a' && r <= 'z' }

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// aliasFromDescription extracts the aka value ("Devil's Ivy, Money Plant")
// from a description, or "" when the block is absent.
func aliasFromDescription(description string, loc schema.Locale) string {
	i := strings.Index(description, loc.AkaPhrase)
	if i < 0 {
		return ""
	}
	start := i + len(loc.AkaPhrase)
	end := strings.Index(description[start:], loc.AkaSuffix)
	if end < 0 {
		return strings.TrimSpace(description[start:])
	}
	return strings.TrimSpace(description[start : start+end])
}

// stripAliasBlock removes the aka clause and tidies the leftover punctuation.
func stripAliasBlock(description string, loc schema.Locale) string {
	if !strings.Contains(description, loc.AkaPhrase) {
		return description
	}
	var blockRe *regexp.Regexp
	if loc.AkaSuffix == "。" {
		blockRe = regexp.MustCompile(regexp.QuoteMeta(loc.AkaPhrase) + `[^。]*。`)
	} else {
		blockRe = regexp.MustCompile(regexp.QuoteMeta(loc.AkaPhrase) + `[^.]*\.`)
	}
	desc := blockRe.ReplaceAllString(description, "")
	desc = doubleStopRe.ReplaceAllString(desc, ".")
	desc = leadingStopRe.ReplaceAllString(desc, "")
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(desc, " "))
}

func buildAliasBlock(value string, loc schema.Locale) string {
	return loc.AkaPhrase + value + loc.AkaSuffix
}

// akaSegment is one "Formal Name (alias, alias)" run from commonExamples.
type akaSegment struct {
	Formal  string
	Aliases []string
}

// parseSegments splits commonExamples into formal/alias segments. A
// semicolon inside the parens separates scientific synonyms from common
// aliases; only the trailing part holds aliases.
func parseSegments(commonExamples string) []akaSegment {
	var segments []akaSegment
	for _, m := range segmentRe.FindAllStringSubmatch(commonExamples, -1) {
		formal := strings.TrimSpace(m[1])
		paren := strings.TrimSpace(m[2])
		if i := strings.LastIndex(paren, ";"); i >= 0 {
			paren = strings.TrimSpace(paren[i+1:])
		}
		var aliases []string
		for _, a := range strings.Split(paren, ",") {
			a = strings.TrimSpace(a)
			if a == "" || strings.HasPrefix(strings.ToLower(a), "syn.") {
				continue
			}
			if _, generic := excludeGeneric[strings.ToLower(a)]; generic {
				continue
			}
			aliases = append(aliases, a)
		}
		if formal != "" && len(aliases) > 0 {
			segments = append(segments, akaSegment{Formal: formal, Aliases: aliases})
		}
	}
	return segments
}

func splitAlias(aka string) []string {
	var parts []string
	for _, p := range strings.Split(aka, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// validAliases returns the common-name aliases from commonExamples usable in
// an aka block: not the typeName itself and not scientific.
func validAliases(typeName, commonExamples string) []string {
	typeLower := strings.ToLower(typeName)
	var result []string
	for _, seg := range parseSegments(commonExamples) {
		for _, a := range seg.Aliases {
			if strings.ToLower(a) == typeLower || looksScientific(a) {
				continue
			}
			result = append(result, a)
		}
	}
	return result
}

// redundantAlias reports whether an alias repeats or shortens the typeName.
func redundantAlias(typeName, alias string) bool {
	tn := normalize(typeName)
	part := normalize(alias)
	return tn == part || strings.Contains(tn, part)
}

// Aka runs the alias-consistency checks over every locale: scientific names
// inside the aka block, aliases redundant with the record's own typeName,
// aliases that belong to a subspecies segment, aliases that collide with
// another record's typeName in the same locale, and aliases claimed by more
// than one record in the same locale. All findings are hard.
func Aka(src *Source) []Finding {
	var findings []Finding
	for _, lang := range src.Langs {
		findings = append(findings, akaScientific(lang)...)
		findings = append(findings, akaRedundant(lang)...)
		findings = append(findings, akaSubspecies(lang)...)
		findings = append(findings, akaCollisions(lang)...)
		findings = append(findings, akaDuplicates(lang)...)
	}
	return findings
}

func akaScientific(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		aka := aliasFromDescription(e.String("description"), lang.Locale)
		if aka == "" {
			continue
		}
		var scientific []string
		for _, p := range splitAlias(aka) {
			if looksScientific(p) {
				scientific = append(scientific, p)
			}
		}
		if len(scientific) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditAka, Kind: "scientific-alias",
			Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
			Message:  fmt.Sprintf("aka contains scientific names: %s", strings.Join(scientific, ", ")),
			Severity: Hard,
		})
	}
	return findings
}

func akaRedundant(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		aka := aliasFromDescription(e.String("description"), lang.Locale)
		if aka == "" {
			continue
		}
		typeName := e.String("typeName")
		var redundant []string
		for _, p := range splitAlias(aka) {
			if redundantAlias(typeName, p) {
				redundant = append(redundant, p)
			}
		}
		if len(redundant) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditAka, Kind: "redundant-alias",
			Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
			Message:  fmt.Sprintf("aka repeats typeName %q: %s", typeName, strings.Join(redundant, ", ")),
			Severity: Hard,
		})
	}
	return findings
}

func akaSubspecies(lang *store.LanguageStore) []Finding {
	var findings []Finding
	for _, e := range lang.Entries {
		aka := aliasFromDescription(e.String("description"), lang.Locale)
		if aka == "" {
			continue
		}
		segments := parseSegments(e.String("commonExamples"))
		if len(segments) < 2 {
			continue
		}
		other := make(map[string]struct{})
		for _, seg := range segments[1:] {
			for _, a := range seg.Aliases {
				other[normalize(a)] = struct{}{}
			}
		}
		var subspecies []string
		for _, p := range splitAlias(aka) {
			if _, ok := other[normalize(p)]; ok {
				subspecies = append(subspecies, p)
			}
		}
		if len(subspecies) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Audit: schema.AuditAka, Kind: "subspecies-alias",
			Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
			Message:  fmt.Sprintf("aka uses non-first-segment aliases: %s", strings.Join(subspecies, ", ")),
			Severity: Hard,
		})
	}
	return findings
}

func akaCollisions(lang *store.LanguageStore) []Finding {
	owner := make(map[string]string)
	for _, e := range lang.Entries {
		if tn := normalize(e.String("typeName")); tn != "" {
			if _, taken := owner[tn]; !taken {
				owner[tn] = e.ID()
			}
		}
	}

	var findings []Finding
	for _, e := range lang.Entries {
		aka := aliasFromDescription(e.String("description"), lang.Locale)
		if aka == "" {
			continue
		}
		for _, p := range splitAlias(aka) {
			id, taken := owner[normalize(p)]
			if !taken || id == e.ID() {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditAka, Kind: "alias-collision",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
				Message:  fmt.Sprintf("aka %q is the typeName of %s", p, id),
				Severity: Hard,
			})
		}
	}
	return findings
}

func akaDuplicates(lang *store.LanguageStore) []Finding {
	// First claimant in entry order owns the alias; later records carrying
	// the same part are flagged.
	owner := make(map[string]string)
	var findings []Finding
	for _, e := range lang.Entries {
		aka := aliasFromDescription(e.String("description"), lang.Locale)
		if aka == "" {
			continue
		}
		for _, p := range splitAlias(aka) {
			key := normalize(p)
			if key == "" {
				continue
			}
			id, taken := owner[key]
			if !taken {
				owner[key] = e.ID()
				continue
			}
			if id == e.ID() {
				continue
			}
			findings = append(findings, Finding{
				Audit: schema.AuditAka, Kind: "duplicate-aka",
				Locale: lang.Locale.Code, PlantID: e.ID(), Field: "description",
				Message:  fmt.Sprintf("aka %q is already used by %s", p, id),
				Severity: Hard,
			})
		}
	}
	return findings
}

// FixAka rewrites descriptions to resolve the fixable alias findings, in the
// same order the audit reports them: scientific aliases are replaced with
// common-name alternatives (or the block is dropped), redundant aliases are
// filtered out, and subspecies aliases are cut back to the first segment.
// Modified stores are saved in place. Returns the number of records changed.
func FixAka(src *Source) (int, error) {
	total := 0
	for _, lang := range src.Langs {
		changed := 0
		for _, e := range lang.Entries {
			if fixAkaEntry(e, lang.Locale) {
				changed++
			}
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

func fixAkaEntry(e store.Record, loc schema.Locale) bool {
	description := e.String("description")
	aka := aliasFromDescription(description, loc)
	if aka == "" {
		return false
	}
	typeName := e.String("typeName")
	commonExamples := e.String("commonExamples")

	kept := splitAlias(aka)

	// Scientific aliases: prefer replacements from commonExamples.
	var nonScientific []string
	hadScientific := false
	for _, p := range kept {
		if looksScientific(p) {
			hadScientific = true
			continue
		}
		nonScientific = append(nonScientific, p)
	}
	if hadScientific {
		if alternatives := validAliases(typeName, commonExamples); len(alternatives) > 0 {
			if len(alternatives) > 3 {
				alternatives = alternatives[:3]
			}
			kept = alternatives
		} else {
			kept = nonScientific
		}
	}

	// Aliases redundant with the record's own typeName.
	var notRedundant []string
	for _, p := range kept {
		if !redundantAlias(typeName, p) {
			notRedundant = append(notRedundant, p)
		}
	}
	kept = notRedundant

	// Aliases belonging to later commonExamples segments.
	if segments := parseSegments(commonExamples); len(segments) >= 2 {
		other := make(map[string]struct{})
		for _, seg := range segments[1:] {
			for _, a := range seg.Aliases {
				other[normalize(a)] = struct{}{}
			}
		}
		var firstOnly []string
		for _, p := range kept {
			if _, ok := other[normalize(p)]; !ok {
				firstOnly = append(firstOnly, p)
			}
		}
		kept = firstOnly
	}

	base := stripAliasBlock(description, loc)
	if base != "" && !strings.HasSuffix(base, ".") && !strings.HasSuffix(base, "。") && !strings.HasSuffix(base, "!") {
		base += "."
	}
	var newDesc string
	switch {
	case len(kept) > 0 && base != "":
		newDesc = buildAliasBlock(strings.Join(kept, ", "), loc) + " " + base
	case len(kept) > 0:
		newDesc = buildAliasBlock(strings.Join(kept, ", "), loc)
	default:
		newDesc = base
	}
	if newDesc == description {
		return false
	}
	e["description"] = newDesc
	return true
}
