// Package check handles dataset-wide validation: the per-record metadata
// check matrix, cross-store referential checks, and the structure check over
// generated dist files.
//
// The validator never stops at the first problem. Every check runs against
// every record and the caller gets the full issue list, so one bad record
// surfaces all of its problems in a single pass.
package check

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/slugs"
	"github.com/plantfolio/plantkit/internal/store"
)

// Issue represents one validation finding against one record or store.
type Issue struct {
	Check   string // stable check ID, e.g. "C8" or "X1"
	Level   IssueLevel
	PlantID string // empty for store-level issues
	Message string
}

func (i Issue) String() string {
	if i.PlantID == "" {
		return fmt.Sprintf("[%s] %s", i.Check, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Check, i.PlantID, i.Message)
}

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// Validator runs the metadata check matrix. Which checks run is controlled
// by the manifest, so datasets pinned to an older rule set keep validating.
type Validator struct {
	manifest *schema.Manifest
}

// NewValidator creates a validator for the given check manifest. A nil
// manifest means every built-in check runs.
func NewValidator(m *schema.Manifest) *Validator {
	if m == nil {
		m = schema.DefaultManifest()
	}
	return &Validator{manifest: m}
}

// ValidateMetadata runs the per-record checks over every record in the
// store, in sorted id order.
func (v *Validator) ValidateMetadata(ms *store.MetadataStore) []Issue {
	var issues []Issue
	for _, id := range ms.IDs() {
		issues = append(issues, v.ValidateRecord(id, ms.Records[id])...)
	}
	return issues
}

// ValidateRecord runs the check matrix against one metadata record.
func (v *Validator) ValidateRecord(id string, rec store.Record) []Issue {
	c := &collector{manifest: v.manifest, id: id}

	if rec == nil {
		c.errorf(schema.CheckRequired, "entry is not a JSON object")
		return c.issues
	}

	if !slugs.IsCanonical(id) {
		c.errorf(schema.CheckIDSlug, "id is not in canonical slug form (want %q)", slugs.Canonical(id))
	}

	var missing []string
	for _, f := range schema.RequiredMetadataFields {
		if _, ok := rec[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		c.errorf(schema.CheckRequired, "missing fields: %s", strings.Join(missing, ", "))
		// Without a category the remaining structure is anyone's guess.
		if _, ok := rec["category"]; !ok {
			return c.issues
		}
	}

	for _, field := range schema.IntervalFields {
		val, ok := rec[field]
		if !ok || val == nil {
			continue
		}
		if n, isInt := asInt(val); !isInt || n < schema.IntervalMin || n > schema.IntervalMax {
			c.errorf(schema.IntervalCheckID(field), "invalid %s %v (expected %d-%d or null)",
				field, val, schema.IntervalMin, schema.IntervalMax)
		}
	}

	c.checkEnum(schema.CheckLight, rec, schema.LightPreferences)
	c.checkEnum(schema.CheckHumidity, rec, schema.HumidityPreferences)
	c.checkTemperature(rec)
	c.checkEnum(schema.CheckToxicity, rec, schema.Toxicities)
	c.checkEnum(schema.CheckSoilPh, rec, schema.SoilPhPreferences)
	c.checkEnum(schema.CheckDrainage, rec, schema.DrainagePreferences)
	c.checkEnum(schema.CheckWatering, rec, schema.WateringMethods)
	c.checkLifeSpan(rec)
	c.checkCategory(rec)
	c.checkHardiness(rec)

	return c.issues
}

// collector accumulates issues for one record, consulting the manifest
// before recording anything.
type collector struct {
	manifest *schema.Manifest
	id       string
	issues   []Issue
}

func (c *collector) errorf(check, format string, args ...any) {
	c.add(check, LevelError, format, args...)
}

func (c *collector) warnf(check, format string, args ...any) {
	c.add(check, LevelWarning, format, args...)
}

func (c *collector) add(check string, level IssueLevel, format string, args ...any) {
	if !c.manifest.Active(check) {
		return
	}
	c.issues = append(c.issues, Issue{
		Check:   check,
		Level:   level,
		PlantID: c.id,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *collector) checkEnum(check string, rec store.Record, e schema.Enum) {
	v, ok := rec[e.Name()]
	if !ok {
		return
	}
	if v == nil {
		if !e.AllowsNull() {
			c.errorf(check, "invalid %s null", e.Name())
		}
		return
	}
	s, isString := v.(string)
	if !isString || !e.Contains(s) {
		c.errorf(check, "invalid %s %q", e.Name(), v)
	}
}

func (c *collector) checkTemperature(rec store.Record) {
	v, ok := rec["temperaturePreference"]
	if !ok {
		return
	}
	pair, ok := asPair(v)
	if !ok {
		c.errorf(schema.CheckTemperature, "invalid temperaturePreference %v (expected [min, max])", v)
		return
	}
	if pair[0] == nil || pair[1] == nil {
		return
	}
	min, okLo := asNumber(pair[0])
	max, okHi := asNumber(pair[1])
	switch {
	case !okLo || !okHi:
		c.errorf(schema.CheckTemperature, "invalid temperaturePreference %v (expected numbers)", v)
	case min > max:
		c.errorf(schema.CheckTemperature, "temperaturePreference min > max")
	case min < schema.TemperatureMin || max > schema.TemperatureMax:
		c.errorf(schema.CheckTemperature, "temperaturePreference out of range (%d to %d°C)",
			schema.TemperatureMin, schema.TemperatureMax)
	}
}

func (c *collector) checkLifeSpan(rec store.Record) {
	v, ok := rec["plantLifeSpan"]
	if !ok {
		return
	}
	pair, ok := asPair(v)
	if !ok {
		c.errorf(schema.CheckLifeSpan, "invalid plantLifeSpan %v (expected [min, max])", v)
		return
	}
	if pair[0] == nil {
		return
	}
	min, ok := asNumber(pair[0])
	if !ok || min < 0 {
		c.errorf(schema.CheckLifeSpan, "plantLifeSpan min < 0")
		return
	}
	// Max is open-ended (null) for long-lived plants; when set it must not
	// undercut min.
	if pair[1] == nil {
		return
	}
	if max, ok := asNumber(pair[1]); !ok || max < min {
		c.errorf(schema.CheckLifeSpan, "plantLifeSpan max < min")
	}
}

func (c *collector) checkCategory(rec store.Record) {
	v, ok := rec["category"]
	if !ok {
		return
	}
	s, isString := v.(string)
	if !isString || !schema.ValidCategory(s) {
		c.errorf(schema.CheckCategory, "invalid category %q", v)
	}
}

func (c *collector) checkHardiness(rec store.Record) {
	v, ok := rec["hardinessZones"]
	if !ok {
		return
	}
	pair, ok := asPair(v)
	if !ok {
		c.errorf(schema.CheckHardiness, "invalid hardinessZones %v (expected [min, max])", v)
		return
	}
	zones := make([]int, 2)
	for i, z := range pair {
		n, isInt := asInt(z)
		if !isInt || n < schema.HardinessZoneMin || n > schema.HardinessZoneMax {
			c.errorf(schema.CheckHardiness, "hardinessZones must be int %d-%d",
				schema.HardinessZoneMin, schema.HardinessZoneMax)
			return
		}
		zones[i] = n
	}
	if zones[0] > zones[1] {
		c.errorf(schema.CheckHardiness, "hardinessZones min > max")
		return
	}
	if cat, ok := rec["category"].(string); ok && schema.ValidCategory(cat) && !schema.OutdoorCategory(cat) {
		c.warnf(schema.CheckHardiness, "hardinessZones set on non-outdoor category %q", cat)
	}
}

// CrossReference checks referential integrity between the metadata store and
// one language store: every id must exist on both sides, and the language
// header's plantCount must match its entry count.
func (v *Validator) CrossReference(ms *store.MetadataStore, lang *store.LanguageStore) []Issue {
	var issues []Issue
	metaIDs := ms.IDSet()
	langIDs := lang.IDSet()

	if v.manifest.Active(schema.CheckLangToMeta) {
		for _, id := range sortedKeys(langIDs) {
			if _, ok := metaIDs[id]; !ok {
				issues = append(issues, Issue{
					Check: schema.CheckLangToMeta, Level: LevelError, PlantID: id,
					Message: fmt.Sprintf("in %s language store but not in metadata", lang.Locale.Code),
				})
			}
		}
	}
	if v.manifest.Active(schema.CheckMetaToLang) {
		for _, id := range ms.IDs() {
			if _, ok := langIDs[id]; !ok {
				issues = append(issues, Issue{
					Check: schema.CheckMetaToLang, Level: LevelError, PlantID: id,
					Message: fmt.Sprintf("in metadata but not in %s language store", lang.Locale.Code),
				})
			}
		}
	}
	if v.manifest.Active(schema.CheckPlantCount) && lang.Header != nil && lang.Header.PlantCount != len(lang.Entries) {
		issues = append(issues, Issue{
			Check: schema.CheckPlantCount, Level: LevelWarning,
			Message: fmt.Sprintf("%s header plantCount %d does not match %d entries",
				lang.Locale.Code, lang.Header.PlantCount, len(lang.Entries)),
		})
	}
	return issues
}

// CheckHeaderCount verifies the metadata header's plantCount.
func (v *Validator) CheckHeaderCount(ms *store.MetadataStore) []Issue {
	if !v.manifest.Active(schema.CheckPlantCount) || ms.Header == nil {
		return nil
	}
	if ms.Header.PlantCount == len(ms.Records) {
		return nil
	}
	return []Issue{{
		Check: schema.CheckPlantCount, Level: LevelWarning,
		Message: fmt.Sprintf("metadata header plantCount %d does not match %d records",
			ms.Header.PlantCount, len(ms.Records)),
	}}
}

// CheckDistStructure validates the shape of one generated dist file: a
// non-empty JSON array whose entries carry every required key. The optional
// _metadata header element is ignored.
func CheckDistStructure(path string, loc schema.Locale) []Issue {
	lang, err := store.LoadLanguage(path, loc)
	if err != nil {
		return []Issue{{Check: "structure", Level: LevelError, Message: err.Error()}}
	}
	if len(lang.Entries) == 0 {
		return []Issue{{Check: "structure", Level: LevelError,
			Message: fmt.Sprintf("%s: expected a non-empty array", path)}}
	}

	var issues []Issue
	for i, e := range lang.Entries {
		var missing []string
		for _, k := range schema.DistRequiredKeys {
			if _, ok := e[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, Issue{
				Check: "structure", Level: LevelError, PlantID: e.ID(),
				Message: fmt.Sprintf("entry %d missing required keys: %s", i, strings.Join(missing, ", ")),
			})
		}
	}
	return issues
}

// Errors counts error-level issues.
func Errors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.Level == LevelError {
			n++
		}
	}
	return n
}

// PerCheck tallies issues by check ID.
func PerCheck(issues []Issue) map[string]int {
	m := make(map[string]int)
	for _, i := range issues {
		m[i.Check]++
	}
	return m
}

// asInt accepts the integral numbers JSON decoding produces.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asPair(v any) ([]any, bool) {
	arr, ok := v.([]any)
	if !ok || len(arr) != 2 {
		return nil, false
	}
	return arr, true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
