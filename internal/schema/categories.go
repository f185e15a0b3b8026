// Package schema holds the dataset's fixed vocabulary: the category order,
// enum value sets, numeric ranges, field lists, and the locale registry.
// Everything here is constant at run time; other packages consult it rather
// than carrying their own copies.
package schema

import "strings"

// CategoryOrder is the canonical category sequence
// (Houseplants → Outdoor → Edibles → Farm/Sprouts → Bulbs → Specialty).
// Dist sorting and the language headers' translated category lists are both
// positional against this list, so the order is part of the data contract.
var CategoryOrder = []string{
	"Houseplants - Low Maintenance", "Houseplants - Aroids", "Houseplants - Ferns",
	"Houseplants - Palms", "Houseplants - Succulents", "Houseplants - Cacti",
	"Houseplants - Flowering", "Houseplants - Prayer Plants", "Houseplants - Vines & Trailing",
	"Houseplants - Ficus & Fig", "Houseplants - Specialty",
	"Outdoor - Trees", "Outdoor - Shrubs", "Outdoor - Perennials",
	"Outdoor - Annuals", "Outdoor - Vines & Climbers", "Outdoor - Groundcovers & Grasses",
	"Vegetables - Leafy Greens", "Vegetables - Fruiting", "Vegetables - Root & Bulb",
	"Fruits & Berries", "Herbs",
	"Farm & Field Crops", "Sprouts & Microgreens",
	"Bulbs",
	"Specialty - Aquatic & Bog", "Specialty - Carnivorous",
	"Specialty - Epiphytes & Moss", "Specialty - Alpine",
}

var categoryIndex = func() map[string]int {
	m := make(map[string]int, len(CategoryOrder))
	for i, c := range CategoryOrder {
		m[c] = i
	}
	return m
}()

// CategoryIndex returns the fixed-order position of a category.
// Unknown categories report ok=false; callers that need a sort key for them
// should use len(CategoryOrder) so they land after everything known.
func CategoryIndex(category string) (int, bool) {
	i, ok := categoryIndex[category]
	return i, ok
}

// ValidCategory reports whether category is a member of the canonical list.
func ValidCategory(category string) bool {
	_, ok := categoryIndex[category]
	return ok
}

// OutdoorCategory reports whether a category describes plants grown outdoors,
// the only ones for which hardinessZones is meaningful.
func OutdoorCategory(category string) bool {
	switch {
	case strings.HasPrefix(category, "Outdoor - "),
		strings.HasPrefix(category, "Vegetables - "),
		category == "Fruits & Berries",
		category == "Herbs",
		category == "Farm & Field Crops",
		category == "Bulbs":
		return true
	}
	return false
}
