package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the dataset schema version the built-in check manifest targets.
// Bump it when the record shape changes (enum renames, new optional fields)
// and the active check set changes with it.
const Version = 3

// Manifest is the set of active checks for a dataset. The check rule set has
// changed release to release (alias complementarity and target-language
// purity are newer than the core matrix), so the manifest is data rather
// than a hard-coded list: a dataset may ship source/checks.yaml to pin a
// schema version or disable individual checks.
type Manifest struct {
	SchemaVersion int      `yaml:"schemaVersion"`
	Checks        []string `yaml:"checks"`
	Disabled      []string `yaml:"disabled"`

	active map[string]struct{}
}

// Check IDs. C-checks are per-record metadata checks, X-checks are
// cross-store, A-checks are content audits.
const (
	CheckIDSlug        = "C0"
	CheckRequired      = "C1"
	CheckSpring        = "C2"
	CheckSummer        = "C3"
	CheckFall          = "C4"
	CheckWinter        = "C5"
	CheckLight         = "C6"
	CheckHumidity      = "C7"
	CheckTemperature   = "C8"
	CheckToxicity      = "C9"
	CheckSoilPh        = "C10"
	CheckDrainage      = "C11"
	CheckWatering      = "C12"
	CheckLifeSpan      = "C13"
	CheckCategory      = "C14"
	CheckHardiness     = "C15"
	CheckLangToMeta    = "X1"
	CheckMetaToLang    = "X2"
	CheckPlantCount    = "X3"
	AuditDuplicates    = "A1"
	AuditDescriptions  = "A2"
	AuditSync          = "A3"
	AuditLanguage      = "A4"
	AuditNames         = "A5"
	AuditAka           = "A6"
	AuditToxicityAlign = "A7"
)

var allChecks = []string{
	CheckIDSlug, CheckRequired,
	CheckSpring, CheckSummer, CheckFall, CheckWinter,
	CheckLight, CheckHumidity, CheckTemperature, CheckToxicity,
	CheckSoilPh, CheckDrainage, CheckWatering, CheckLifeSpan,
	CheckCategory, CheckHardiness,
	CheckLangToMeta, CheckMetaToLang, CheckPlantCount,
	AuditDuplicates, AuditDescriptions, AuditSync, AuditLanguage,
	AuditNames, AuditAka, AuditToxicityAlign,
}

// IntervalCheckID maps a seasonal interval field to its check ID.
func IntervalCheckID(field string) string {
	switch field {
	case "springInterval":
		return CheckSpring
	case "summerInterval":
		return CheckSummer
	case "fallInterval":
		return CheckFall
	case "winterInterval":
		return CheckWinter
	}
	return CheckRequired
}

// DefaultManifest returns the built-in manifest for the current schema
// version with every check active.
func DefaultManifest() *Manifest {
	m := &Manifest{
		SchemaVersion: Version,
		Checks:        append([]string(nil), allChecks...),
	}
	m.index()
	return m
}

// LoadManifest reads a checks.yaml override. A missing file yields the
// default manifest; a malformed one is a structural error.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultManifest(), nil
		}
		return nil, fmt.Errorf("read check manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse check manifest %s: %w", path, err)
	}
	if m.SchemaVersion == 0 {
		m.SchemaVersion = Version
	}
	if m.SchemaVersion > Version {
		return nil, fmt.Errorf("check manifest targets schema version %d, this build supports up to %d", m.SchemaVersion, Version)
	}
	if len(m.Checks) == 0 {
		m.Checks = append([]string(nil), allChecks...)
	}
	for _, id := range append(append([]string(nil), m.Checks...), m.Disabled...) {
		if !knownCheck(id) {
			return nil, fmt.Errorf("check manifest %s: unknown check %q", path, id)
		}
	}
	m.index()
	return &m, nil
}

// Active reports whether a check ID should run.
func (m *Manifest) Active(id string) bool {
	_, ok := m.active[id]
	return ok
}

func (m *Manifest) index() {
	disabled := make(map[string]struct{}, len(m.Disabled))
	for _, id := range m.Disabled {
		disabled[id] = struct{}{}
	}
	m.active = make(map[string]struct{}, len(m.Checks))
	for _, id := range m.Checks {
		if _, off := disabled[id]; !off {
			m.active[id] = struct{}{}
		}
	}
}

func knownCheck(id string) bool {
	for _, c := range allChecks {
		if c == id {
			return true
		}
	}
	return false
}
