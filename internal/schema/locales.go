package schema

// Locale describes one translation of the dataset: where its source file
// lives, what the merged dist file is called, and the locale-specific
// phrasing conventions the audits rely on.
type Locale struct {
	Code       string // BCP 47 tag used in findings and flags
	SourceFile string // language file under source/
	DistName   string // dist resource name, without .json

	// AkaPhrase and AkaSuffix delimit the optional "also known as" clause at
	// the start of a description, e.g. "Also known as: Devil's Ivy."
	AkaPhrase string
	AkaSuffix string

	// CJK reports whether the locale's text is expected to be written in
	// CJK script. Used by the target-language audit in both directions.
	CJK bool
}

// Locales is the fixed locale registry. The English entry is first and is
// the reference locale for cross-locale checks (translation sync compares
// the other locales against it).
var Locales = []Locale{
	{
		Code:       "en",
		SourceFile: "common_plants_language_en.json",
		DistName:   "common_plants",
		AkaPhrase:  "Also known as: ",
		AkaSuffix:  ".",
	},
	{
		Code:       "es",
		SourceFile: "common_plants_language_es.json",
		DistName:   "common_plants_es",
		AkaPhrase:  "También conocida como: ",
		AkaSuffix:  ".",
	},
	{
		Code:       "zh-Hans",
		SourceFile: "common_plants_language_zh-Hans.json",
		DistName:   "common_plants_zh-Hans",
		AkaPhrase:  "也称：",
		AkaSuffix:  "。",
		CJK:        true,
	},
}

// MetadataFile is the locale-independent store under source/.
const MetadataFile = "common_plants_metadata.json"

// LocaleByCode looks up a locale by its tag, accepting the short "zh" alias.
func LocaleByCode(code string) (Locale, bool) {
	if code == "zh" {
		code = "zh-Hans"
	}
	for _, l := range Locales {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// ReferenceLocale returns the English locale.
func ReferenceLocale() Locale { return Locales[0] }
