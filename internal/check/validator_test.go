package check

import (
	"os"
	"strings"
	"testing"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/testutil"
)

func validRecord() store.Record {
	return store.Record(testutil.ValidMetadata())
}

func findIssue(issues []Issue, check string) (Issue, bool) {
	for _, i := range issues {
		if i.Check == check {
			return i, true
		}
	}
	return Issue{}, false
}

func TestValidateRecord(t *testing.T) {
	v := NewValidator(nil)

	t.Run("valid record", func(t *testing.T) {
		issues := v.ValidateRecord("pothos-golden", validRecord())
		if len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("nil record", func(t *testing.T) {
		issues := v.ValidateRecord("pothos-golden", nil)
		if _, ok := findIssue(issues, schema.CheckRequired); !ok {
			t.Errorf("expected C1 for non-object entry, got %v", issues)
		}
	})

	t.Run("non-canonical id", func(t *testing.T) {
		issues := v.ValidateRecord("Pothos Golden", validRecord())
		if _, ok := findIssue(issues, schema.CheckIDSlug); !ok {
			t.Errorf("expected C0, got %v", issues)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := validRecord()
		delete(rec, "plantToxicity")
		delete(rec, "soilPhPreference")
		issues := v.ValidateRecord("pothos-golden", rec)
		issue, ok := findIssue(issues, schema.CheckRequired)
		if !ok {
			t.Fatalf("expected C1, got %v", issues)
		}
		if !strings.Contains(issue.Message, "plantToxicity") || !strings.Contains(issue.Message, "soilPhPreference") {
			t.Errorf("C1 message should list all missing fields: %s", issue.Message)
		}
	})

	t.Run("missing category short-circuits", func(t *testing.T) {
		issues := v.ValidateRecord("pothos-golden", store.Record{"springInterval": float64(200)})
		if len(issues) != 1 || issues[0].Check != schema.CheckRequired {
			t.Errorf("a record without category should only report C1, got %v", issues)
		}
	})

	t.Run("interval out of range", func(t *testing.T) {
		rec := validRecord()
		rec["springInterval"] = float64(95)
		issues := v.ValidateRecord("pothos-golden", rec)
		if _, ok := findIssue(issues, schema.CheckSpring); !ok {
			t.Errorf("expected C2 for springInterval 95, got %v", issues)
		}
	})

	t.Run("interval null is valid", func(t *testing.T) {
		rec := validRecord()
		rec["winterInterval"] = nil
		if issues := v.ValidateRecord("pothos-golden", rec); len(issues) != 0 {
			t.Errorf("null winterInterval should pass, got %v", issues)
		}
	})

	t.Run("non-integer interval", func(t *testing.T) {
		rec := validRecord()
		rec["fallInterval"] = 7.5
		if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckFall); !ok {
			t.Error("expected C4 for fractional fallInterval")
		}
	})

	t.Run("bad enum values", func(t *testing.T) {
		cases := []struct {
			field string
			check string
		}{
			{"lightPreference", schema.CheckLight},
			{"humidityPreference", schema.CheckHumidity},
			{"plantToxicity", schema.CheckToxicity},
			{"soilPhPreference", schema.CheckSoilPh},
			{"drainagePreference", schema.CheckDrainage},
			{"wateringMethod", schema.CheckWatering},
		}
		for _, tc := range cases {
			rec := validRecord()
			rec[tc.field] = "bogus"
			if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), tc.check); !ok {
				t.Errorf("expected %s for invalid %s", tc.check, tc.field)
			}
		}
	})

	t.Run("null wateringMethod is valid", func(t *testing.T) {
		rec := validRecord()
		rec["wateringMethod"] = nil
		if issues := v.ValidateRecord("pothos-golden", rec); len(issues) != 0 {
			t.Errorf("null wateringMethod should pass, got %v", issues)
		}
	})

	t.Run("null lightPreference is invalid", func(t *testing.T) {
		rec := validRecord()
		rec["lightPreference"] = nil
		if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckLight); !ok {
			t.Error("expected C6 for null lightPreference")
		}
	})

	t.Run("temperature min greater than max", func(t *testing.T) {
		rec := validRecord()
		rec["temperaturePreference"] = []any{float64(30), float64(10)}
		issue, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckTemperature)
		if !ok || !strings.Contains(issue.Message, "min > max") {
			t.Errorf("expected C8 min > max, got %v", issue)
		}
	})

	t.Run("temperature out of range", func(t *testing.T) {
		rec := validRecord()
		rec["temperaturePreference"] = []any{float64(-20), float64(30)}
		if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckTemperature); !ok {
			t.Error("expected C8 for -20°C")
		}
	})

	t.Run("lifespan open-ended max is valid", func(t *testing.T) {
		rec := validRecord()
		rec["plantLifeSpan"] = []any{float64(60), nil}
		if issues := v.ValidateRecord("pothos-golden", rec); len(issues) != 0 {
			t.Errorf("[60, null] lifespan should pass, got %v", issues)
		}
	})

	t.Run("negative lifespan min", func(t *testing.T) {
		rec := validRecord()
		rec["plantLifeSpan"] = []any{float64(-1), float64(10)}
		if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckLifeSpan); !ok {
			t.Error("expected C13 for negative lifespan min")
		}
	})

	t.Run("lifespan max less than min", func(t *testing.T) {
		rec := validRecord()
		rec["plantLifeSpan"] = []any{float64(10), float64(2)}
		issue, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckLifeSpan)
		if !ok || !strings.Contains(issue.Message, "max < min") {
			t.Errorf("expected C13 max < min, got %v", issue)
		}
	})

	t.Run("lifespan equal min and max is valid", func(t *testing.T) {
		rec := validRecord()
		rec["plantLifeSpan"] = []any{float64(5), float64(5)}
		if issues := v.ValidateRecord("pothos-golden", rec); len(issues) != 0 {
			t.Errorf("[5, 5] lifespan should pass, got %v", issues)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		rec := validRecord()
		rec["category"] = "Houseplants - Imaginary"
		if _, ok := findIssue(v.ValidateRecord("pothos-golden", rec), schema.CheckCategory); !ok {
			t.Error("expected C14 for unknown category")
		}
	})

	t.Run("hardiness zones", func(t *testing.T) {
		rec := validRecord()
		rec["category"] = "Outdoor - Trees"
		rec["hardinessZones"] = []any{float64(5), float64(8)}
		if issues := v.ValidateRecord("maple-japanese", rec); len(issues) != 0 {
			t.Errorf("valid hardinessZones should pass, got %v", issues)
		}

		rec["hardinessZones"] = []any{float64(0), float64(8)}
		if _, ok := findIssue(v.ValidateRecord("maple-japanese", rec), schema.CheckHardiness); !ok {
			t.Error("expected C15 for zone 0")
		}

		rec["hardinessZones"] = []any{float64(9), float64(5)}
		issue, ok := findIssue(v.ValidateRecord("maple-japanese", rec), schema.CheckHardiness)
		if !ok || !strings.Contains(issue.Message, "min > max") {
			t.Errorf("expected C15 min > max, got %v", issue)
		}
	})

	t.Run("hardiness on indoor category warns", func(t *testing.T) {
		rec := validRecord()
		rec["category"] = "Houseplants - Succulents"
		rec["hardinessZones"] = []any{float64(3), float64(9)}
		issue, ok := findIssue(v.ValidateRecord("echeveria", rec), schema.CheckHardiness)
		if !ok {
			t.Fatal("expected C15 warning for hardinessZones on an indoor category")
		}
		if issue.Level != LevelWarning {
			t.Errorf("indoor hardiness misuse should be a warning, got %v", issue.Level)
		}
	})
}

func TestManifestGating(t *testing.T) {
	m := &schema.Manifest{
		SchemaVersion: schema.Version,
		Disabled:      []string{schema.CheckHardiness},
	}
	loaded, err := roundTripManifest(t, m)
	if err != nil {
		t.Fatal(err)
	}
	v := NewValidator(loaded)

	rec := validRecord()
	rec["hardinessZones"] = []any{float64(0), float64(20)}
	if issues := v.ValidateRecord("pothos-golden", rec); len(issues) != 0 {
		t.Errorf("disabled C15 should not fire, got %v", issues)
	}
}

// roundTripManifest writes a manifest to disk and loads it back, exercising
// the same path the CLI uses.
func roundTripManifest(t *testing.T, m *schema.Manifest) (*schema.Manifest, error) {
	t.Helper()
	content := "schemaVersion: 3\ndisabled:\n"
	for _, id := range m.Disabled {
		content += "  - " + id + "\n"
	}
	d := testutil.NewTestDataset(t).WithFile("source/checks.yaml", content).Build()
	return schema.LoadManifest(d.Dataset().ManifestPath())
}

func TestCrossReference(t *testing.T) {
	d := testutil.NewTestDataset(t).
		WithPlant("monstera-deliciosa").
		WithMetadata("pothos-golden", testutil.ValidMetadata()).
		WithLanguage("en", testutil.LanguageEntry("ghost-plant", "en")).
		Build()
	ds := d.Dataset()

	ms, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		t.Fatal(err)
	}
	lang, err := store.LoadLanguage(ds.LanguagePath(schema.ReferenceLocale()), schema.ReferenceLocale())
	if err != nil {
		t.Fatal(err)
	}

	issues := NewValidator(nil).CrossReference(ms, lang)

	x1, ok := findIssue(issues, schema.CheckLangToMeta)
	if !ok || x1.PlantID != "ghost-plant" {
		t.Errorf("expected X1 for ghost-plant, got %v", issues)
	}
	x2, ok := findIssue(issues, schema.CheckMetaToLang)
	if !ok || x2.PlantID != "pothos-golden" {
		t.Errorf("expected X2 for pothos-golden, got %v", issues)
	}
}

func TestCheckHeaderCount(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()
	ms, err := store.LoadMetadata(d.Dataset().MetadataPath())
	if err != nil {
		t.Fatal(err)
	}
	v := NewValidator(nil)

	if issues := v.CheckHeaderCount(ms); len(issues) != 0 {
		t.Errorf("matching plantCount should pass, got %v", issues)
	}

	ms.Header.PlantCount = 99
	issues := v.CheckHeaderCount(ms)
	if len(issues) != 1 || issues[0].Check != schema.CheckPlantCount {
		t.Errorf("expected X3, got %v", issues)
	}
}

func TestCheckDistStructure(t *testing.T) {
	en := schema.ReferenceLocale()

	t.Run("valid dist file", func(t *testing.T) {
		d := testutil.NewTestDataset(t).Build()
		d.AssertFileExists("source/common_plants_metadata.json")
		path := d.Root + "/dist.json"
		writeTestFile(t, path, `[{"id": "a", "typeName": "A", "description": "d", "commonExamples": "e"}]`)
		if issues := CheckDistStructure(path, en); len(issues) != 0 {
			t.Errorf("expected no issues, got %v", issues)
		}
	})

	t.Run("missing keys", func(t *testing.T) {
		d := testutil.NewTestDataset(t).Build()
		path := d.Root + "/dist.json"
		writeTestFile(t, path, `[{"id": "a", "typeName": "A"}]`)
		issues := CheckDistStructure(path, en)
		if len(issues) != 1 {
			t.Fatalf("expected 1 issue, got %v", issues)
		}
		if !strings.Contains(issues[0].Message, "description") || !strings.Contains(issues[0].Message, "commonExamples") {
			t.Errorf("issue should name the missing keys: %s", issues[0].Message)
		}
	})

	t.Run("empty array", func(t *testing.T) {
		d := testutil.NewTestDataset(t).Build()
		path := d.Root + "/dist.json"
		writeTestFile(t, path, `[]`)
		if issues := CheckDistStructure(path, en); len(issues) != 1 {
			t.Errorf("expected non-empty-array issue, got %v", issues)
		}
	})
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestErrorsAndPerCheck(t *testing.T) {
	issues := []Issue{
		{Check: "C2", Level: LevelError},
		{Check: "C2", Level: LevelError},
		{Check: "X3", Level: LevelWarning},
	}
	if got := Errors(issues); got != 2 {
		t.Errorf("Errors = %d, want 2", got)
	}
	counts := PerCheck(issues)
	if counts["C2"] != 2 || counts["X3"] != 1 {
		t.Errorf("PerCheck = %v", counts)
	}
}
