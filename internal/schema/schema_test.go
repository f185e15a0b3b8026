package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCategoryIndex(t *testing.T) {
	t.Run("first and last entries", func(t *testing.T) {
		if i, ok := CategoryIndex("Houseplants - Low Maintenance"); !ok || i != 0 {
			t.Errorf("expected index 0, got %d (ok=%v)", i, ok)
		}
		last := CategoryOrder[len(CategoryOrder)-1]
		if i, ok := CategoryIndex(last); !ok || i != len(CategoryOrder)-1 {
			t.Errorf("expected index %d for %q, got %d (ok=%v)", len(CategoryOrder)-1, last, i, ok)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		if _, ok := CategoryIndex("Houseplants - Bonsai"); ok {
			t.Error("expected unknown category to report ok=false")
		}
	})

	t.Run("no duplicate entries", func(t *testing.T) {
		seen := map[string]bool{}
		for _, c := range CategoryOrder {
			if seen[c] {
				t.Errorf("duplicate category %q", c)
			}
			seen[c] = true
		}
	})
}

func TestOutdoorCategory(t *testing.T) {
	outdoor := []string{
		"Outdoor - Trees", "Outdoor - Perennials", "Vegetables - Fruiting",
		"Fruits & Berries", "Herbs", "Bulbs", "Farm & Field Crops",
	}
	for _, c := range outdoor {
		if !OutdoorCategory(c) {
			t.Errorf("expected %q to be outdoor-class", c)
		}
	}
	indoor := []string{
		"Houseplants - Succulents", "Houseplants - Aroids",
		"Specialty - Carnivorous", "Sprouts & Microgreens",
	}
	for _, c := range indoor {
		if OutdoorCategory(c) {
			t.Errorf("expected %q to not be outdoor-class", c)
		}
	}
}

func TestEnumMembership(t *testing.T) {
	if !LightPreferences.Contains("brightIndirect") {
		t.Error("brightIndirect should be a valid lightPreference")
	}
	if LightPreferences.Contains("fullSun") {
		t.Error("fullSun is not a valid lightPreference")
	}
	if !Toxicities.Contains("unknown") {
		t.Error("unknown should be a valid plantToxicity")
	}
	if !WateringMethods.AllowsNull() {
		t.Error("wateringMethod should allow null")
	}
	if LightPreferences.AllowsNull() {
		t.Error("lightPreference should not allow null")
	}
}

func TestLocaleByCode(t *testing.T) {
	if l, ok := LocaleByCode("zh"); !ok || l.Code != "zh-Hans" {
		t.Errorf("zh alias should resolve to zh-Hans, got %+v ok=%v", l, ok)
	}
	if _, ok := LocaleByCode("fr"); ok {
		t.Error("fr should not resolve")
	}
	if ReferenceLocale().Code != "en" {
		t.Errorf("reference locale should be en, got %s", ReferenceLocale().Code)
	}
}

func TestManifest(t *testing.T) {
	t.Run("default has everything active", func(t *testing.T) {
		m := DefaultManifest()
		for _, id := range []string{CheckRequired, CheckHardiness, CheckMetaToLang, AuditAka} {
			if !m.Active(id) {
				t.Errorf("expected %s active in default manifest", id)
			}
		}
	})

	t.Run("missing file yields default", func(t *testing.T) {
		m, err := LoadManifest(filepath.Join(t.TempDir(), "checks.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !m.Active(CheckTemperature) {
			t.Error("expected default manifest when file missing")
		}
	})

	t.Run("disabled suppresses exactly that check", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "checks.yaml")
		content := "schemaVersion: 3\ndisabled:\n  - C15\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		m, err := LoadManifest(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Active(CheckHardiness) {
			t.Error("C15 should be disabled")
		}
		if !m.Active(CheckCategory) {
			t.Error("C14 should remain active")
		}
	})

	t.Run("unknown check id rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "checks.yaml")
		if err := os.WriteFile(path, []byte("checks: [C1, Z9]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadManifest(path); err == nil {
			t.Error("expected error for unknown check id")
		}
	})

	t.Run("future schema version rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "checks.yaml")
		if err := os.WriteFile(path, []byte("schemaVersion: 99\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadManifest(path); err == nil {
			t.Error("expected error for future schema version")
		}
	})
}
