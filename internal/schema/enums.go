package schema

// Enum is a closed value set with membership tests. Unrecognized values are
// rejected by the validator, never coerced.
type Enum struct {
	name      string
	values    []string
	allowNull bool
	members   map[string]struct{}
}

func newEnum(name string, allowNull bool, values ...string) Enum {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return Enum{name: name, values: values, allowNull: allowNull, members: m}
}

// Name returns the field name the enum applies to.
func (e Enum) Name() string { return e.name }

// Values returns the allowed values in declaration order.
func (e Enum) Values() []string { return append([]string(nil), e.values...) }

// AllowsNull reports whether null is an accepted value (wateringMethod only,
// for aquatic and carnivorous plants).
func (e Enum) AllowsNull() bool { return e.allowNull }

// Contains reports whether s is a member of the value set.
func (e Enum) Contains(s string) bool {
	_, ok := e.members[s]
	return ok
}

var (
	// LightPreferences covers indoor indirect tiers plus outdoor exposure.
	LightPreferences = newEnum("lightPreference", false,
		"brightIndirect", "deepShade", "gentleDirect", "lowIndirect",
		"mediumIndirect", "outdoorFullSun", "outdoorPartialSun", "outdoorShade",
		"strongDirect",
	)

	// Toxicities includes an explicit "unknown" for unresearched plants.
	Toxicities = newEnum("plantToxicity", false,
		"mildlyToxic", "nonToxic", "toxic", "unknown",
	)

	// HumidityPreferences is the four-step humidity scale.
	HumidityPreferences = newEnum("humidityPreference", false,
		"high", "low", "medium", "veryHigh",
	)

	// SoilPhPreferences includes "adaptable" for plants with no pH preference.
	SoilPhPreferences = newEnum("soilPhPreference", false,
		"acidic", "adaptable", "alkaline", "neutral",
	)

	// DrainagePreferences ranges from fast-draining to bog-tolerant.
	DrainagePreferences = newEnum("drainagePreference", false,
		"excellentDrainage", "moistureRetentive",
		"waterloggingTolerant", "wellDraining",
	)

	// WateringMethods allows null for plants that are never watered directly.
	WateringMethods = newEnum("wateringMethod", true,
		"bottomWatering", "immersion", "misting", "topWatering",
	)
)

// Numeric bounds shared by the validator and the fixture builders.
const (
	IntervalMin = 1
	IntervalMax = 90

	TemperatureMin = -10
	TemperatureMax = 45

	HardinessZoneMin = 1
	HardinessZoneMax = 11
)
