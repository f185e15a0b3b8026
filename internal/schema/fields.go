package schema

// IntervalFields are the four seasonal watering-interval fields, each an
// integer in [IntervalMin, IntervalMax] or null (dormant / no scheduled
// watering).
var IntervalFields = []string{
	"springInterval", "summerInterval", "fallInterval", "winterInterval",
}

// MetadataKeyOrder is the key order used when writing metadata records.
// Fixed ordering keeps source rewrites and dist output git-diff stable.
var MetadataKeyOrder = []string{
	"springInterval", "summerInterval", "fallInterval", "winterInterval",
	"lightPreference", "humidityPreference", "temperaturePreference",
	"plantToxicity", "soilPhPreference", "drainagePreference", "wateringMethod",
	"plantLifeSpan", "category", "hardinessZones",
}

// LanguageKeyOrder is the key order for language records and for the
// language-derived half of merged dist records.
var LanguageKeyOrder = []string{
	"id", "typeName", "description", "commonExamples", "careTips",
}

// DistKeyOrder is the key order for merged dist records: language fields
// first, then metadata fields, then the appended categoryIndex sort key.
var DistKeyOrder = append(append(append([]string{}, LanguageKeyOrder...), MetadataKeyOrder...), "categoryIndex")

// RequiredMetadataFields must be present on every metadata record.
// hardinessZones is deliberately absent: it is optional and outdoor-only.
var RequiredMetadataFields = []string{
	"springInterval", "summerInterval", "fallInterval", "winterInterval",
	"lightPreference", "humidityPreference", "temperaturePreference",
	"plantToxicity", "soilPhPreference", "drainagePreference", "wateringMethod",
	"plantLifeSpan", "category",
}

// RequiredLanguageFields must be non-empty on every language record.
var RequiredLanguageFields = []string{"typeName", "description", "careTips"}

// DistRequiredKeys are the keys a merged dist entry must carry; used by the
// structure check over generated files.
var DistRequiredKeys = []string{"id", "typeName", "description", "commonExamples"}
