package merge

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/testutil"
)

func readDist(t *testing.T, d *testutil.TestDataset, loc schema.Locale) []map[string]any {
	t.Helper()
	raw := d.ReadFile("dist/" + loc.DistName + ".json")
	var out []map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("dist %s is not a JSON array: %v", loc.DistName, err)
	}
	return out
}

func TestRunMergesAllLocales(t *testing.T) {
	d := testutil.NewTestDataset(t).
		WithPlant("pothos-golden").
		WithPlant("monstera-deliciosa").
		Build()

	report, err := Run(d.Dataset(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report.Results)
	}
	if report.Total != 6 {
		t.Errorf("total merged = %d, want 6", report.Total)
	}

	for _, loc := range schema.Locales {
		entries := readDist(t, d, loc)
		if len(entries) != 2 {
			t.Fatalf("%s: %d entries, want 2", loc.Code, len(entries))
		}
		for _, e := range entries {
			if _, ok := e["categoryIndex"]; !ok {
				t.Errorf("%s: entry %v missing categoryIndex", loc.Code, e["id"])
			}
			if e["lightPreference"] != "brightIndirect" {
				t.Errorf("%s: metadata fields not merged into %v", loc.Code, e["id"])
			}
			if e["typeName"] == "" {
				t.Errorf("%s: language fields not merged into %v", loc.Code, e["id"])
			}
		}
	}
}

func TestRunTranslatesCategory(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()

	if _, err := Run(d.Dataset(), Options{}); err != nil {
		t.Fatal(err)
	}

	es, _ := schema.LocaleByCode("es")
	entries := readDist(t, d, es)
	if got := entries[0]["category"]; got != "[es] Houseplants - Low Maintenance" {
		t.Errorf("es category = %q, want positional translation", got)
	}

	en := schema.ReferenceLocale()
	entries = readDist(t, d, en)
	if got := entries[0]["category"]; got != "Houseplants - Low Maintenance" {
		t.Errorf("en category = %q", got)
	}
}

func TestRunExcludesUnmatchedIDs(t *testing.T) {
	d := testutil.NewTestDataset(t).
		WithPlant("monstera-deliciosa").
		// Metadata-only id: no language entries anywhere.
		WithMetadata("pothos-golden", testutil.ValidMetadata()).
		// Language-only id in English.
		WithLanguage("en", testutil.LanguageEntry("ghost-plant", "en")).
		Build()

	report, err := Run(d.Dataset(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Clean() {
		t.Error("expected diagnostics to fail the run")
	}

	en := report.Results[0]
	if len(en.MissingMetadata) != 1 || en.MissingMetadata[0] != "ghost-plant" {
		t.Errorf("en MissingMetadata = %v", en.MissingMetadata)
	}
	if len(en.MissingLanguage) != 1 || en.MissingLanguage[0] != "pothos-golden" {
		t.Errorf("en MissingLanguage = %v", en.MissingLanguage)
	}

	entries := readDist(t, d, schema.ReferenceLocale())
	if len(entries) != 1 || entries[0]["id"] != "monstera-deliciosa" {
		t.Errorf("unmatched ids should be excluded from output, got %v", entries)
	}
}

func TestRunOrdersByCategory(t *testing.T) {
	tree := testutil.ValidMetadata()
	tree["category"] = "Outdoor - Trees"
	tree["hardinessZones"] = []any{5, 8}

	d := testutil.NewTestDataset(t).
		WithMetadata("maple-japanese", tree).
		WithLanguage("en", testutil.LanguageEntry("maple-japanese", "en")).
		// Listed after the tree in the source but an earlier category.
		WithPlant("pothos-golden").
		Build()

	if _, err := Run(d.Dataset(), Options{}); err != nil {
		t.Fatal(err)
	}

	entries := readDist(t, d, schema.ReferenceLocale())
	if entries[0]["id"] != "pothos-golden" || entries[1]["id"] != "maple-japanese" {
		t.Errorf("expected categoryIndex order, got %v then %v", entries[0]["id"], entries[1]["id"])
	}
}

func TestRunHeaderOption(t *testing.T) {
	d := testutil.NewTestDataset(t).WithVersion("2.1.0").WithPlant("pothos-golden").Build()

	if _, err := Run(d.Dataset(), Options{Header: true}); err != nil {
		t.Fatal(err)
	}

	raw := d.ReadFile("dist/common_plants.json")
	var arr []map[string]any
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		t.Fatal(err)
	}
	header, ok := arr[0]["_metadata"].(map[string]any)
	if !ok {
		t.Fatalf("first element should be a _metadata header, got %v", arr[0])
	}
	if header["version"] != "2.1.0" {
		t.Errorf("header version = %v", header["version"])
	}
	if header["plantCount"] != float64(1) {
		t.Errorf("header plantCount = %v", header["plantCount"])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").WithPlant("monstera-deliciosa").Build()
	ds := d.Dataset()

	if _, err := Run(ds, Options{}); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(ds.DistPath(schema.ReferenceLocale()))

	if _, err := Run(ds, Options{}); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(ds.DistPath(schema.ReferenceLocale()))

	if string(first) != string(second) {
		t.Error("repeated merges should be byte-identical")
	}
}

func TestRunEmptyLanguageStore(t *testing.T) {
	d := testutil.NewTestDataset(t).
		WithMetadata("pothos-golden", testutil.ValidMetadata()).
		Build()
	// Write an empty en store (header only).
	if err := os.WriteFile(d.Root+"/source/common_plants_language_en.json",
		[]byte(`[{"_metadata": {"version": "1.0.0", "plantCount": 0}}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := Run(d.Dataset(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	en := report.Results[0]
	if !en.Clean() {
		t.Errorf("empty language store should produce no cross-reference findings, got %+v", en)
	}
	if en.Merged != 0 {
		t.Errorf("merged = %d, want 0", en.Merged)
	}
	raw := d.ReadFile("dist/common_plants.json")
	if strings.TrimSpace(raw) != "[]" {
		t.Errorf("expected empty array, got %s", raw)
	}
}

func TestRunMissingLocaleSourceIsSkipped(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()
	if err := os.Remove(d.Root + "/source/common_plants_language_zh-Hans.json"); err != nil {
		t.Fatal(err)
	}

	report, err := Run(d.Dataset(), Options{})
	if err != nil {
		t.Fatalf("missing locale source should not abort the run: %v", err)
	}

	var zh Result
	for _, res := range report.Results {
		if res.Locale.Code == "zh-Hans" {
			zh = res
		}
	}
	if !zh.SourceMissing {
		t.Error("expected zh-Hans result to be marked SourceMissing")
	}
	d.AssertFileNotExists("dist/common_plants_zh-Hans.json")
}
