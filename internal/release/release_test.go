package release

import (
	"strings"
	"testing"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/testutil"
)

func outdoorAnnual() map[string]any {
	m := testutil.ValidMetadata()
	m["category"] = "Outdoor - Annuals"
	return m
}

func findStep(t *testing.T, rep *Report, name string) Step {
	t.Helper()
	for _, s := range rep.Steps {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("step %q not in report: %+v", name, rep.Steps)
	return Step{}
}

func TestSort(t *testing.T) {
	d := testutil.NewTestDataset(t).
		WithMetadata("zinnia", outdoorAnnual()).
		WithMetadata("aloe-vera", func() map[string]any {
			m := testutil.ValidMetadata()
			m["category"] = "Houseplants - Succulents"
			return m
		}()).
		WithLanguage("en", testutil.LanguageEntry("zinnia", "en")).
		WithLanguage("en", testutil.LanguageEntry("aloe-vera", "en")).
		Build()

	res, err := Sort(d.Dataset())
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if res.Plants != 2 {
		t.Errorf("plants = %d, want 2", res.Plants)
	}
	if res.Locales["en"] != 2 {
		t.Errorf("en entries = %d, want 2", res.Locales["en"])
	}

	loc, _ := schema.LocaleByCode("en")
	lang, err := store.LoadLanguage(d.Dataset().LanguagePath(loc), loc)
	if err != nil {
		t.Fatalf("reload language: %v", err)
	}
	if lang.Entries[0].ID() != "aloe-vera" {
		t.Errorf("houseplant should sort before outdoor annual, got %s first", lang.Entries[0].ID())
	}

	meta := d.ReadFile("source/common_plants_metadata.json")
	if strings.Index(meta, `"aloe-vera"`) > strings.Index(meta, `"zinnia"`) {
		t.Error("metadata store should list aloe-vera before zinnia")
	}
}

func TestRun(t *testing.T) {
	t.Run("clean dataset passes every step", func(t *testing.T) {
		d := testutil.NewTestDataset(t).
			WithPlant("pothos-golden").
			WithPlant("monstera-deliciosa").
			Build()

		rep, err := Run(d.Dataset(), Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if !rep.OK {
			t.Errorf("report not OK: %+v", rep.Steps)
		}
		if len(rep.Steps) != 9 {
			t.Errorf("steps = %d, want build + validate + 7 audits", len(rep.Steps))
		}
		for _, s := range rep.Steps {
			if !s.OK {
				t.Errorf("step %s failed: %v", s.Name, s.Problems)
			}
		}
		if !d.FileExists("dist/common_plants_en.json") {
			t.Error("build step should write dist files")
		}
	})

	t.Run("sort option adds a leading step", func(t *testing.T) {
		d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()
		rep, err := Run(d.Dataset(), Options{Sort: true})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if rep.Steps[0].Name != "sort" || !rep.Steps[0].OK {
			t.Errorf("first step = %+v, want sort", rep.Steps[0])
		}
	})

	t.Run("cross-reference gap fails build and validate", func(t *testing.T) {
		d := testutil.NewTestDataset(t).
			WithPlant("pothos-golden").
			WithMetadata("ghost-fern", testutil.ValidMetadata()).
			Build()

		rep, err := Run(d.Dataset(), Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if rep.OK {
			t.Error("report should fail")
		}
		build := findStep(t, rep, "build")
		if build.OK {
			t.Error("build step should fail on the missing language entry")
		}
		found := false
		for _, p := range build.Problems {
			if strings.Contains(p, "ghost-fern") {
				found = true
			}
		}
		if !found {
			t.Errorf("build problems should name ghost-fern: %v", build.Problems)
		}
		if findStep(t, rep, "validate").OK {
			t.Error("validate step should fail the cross-reference check")
		}
		if findStep(t, rep, "audit:duplicates").OK != true {
			t.Error("unrelated audits should still pass")
		}
	})

	t.Run("manifest gates audits", func(t *testing.T) {
		d := testutil.NewTestDataset(t).
			WithPlant("pothos-golden").
			WithFile("source/checks.yaml", "schemaVersion: 3\ndisabled:\n  - A6\n  - A7\n").
			Build()

		rep, err := Run(d.Dataset(), Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		for _, s := range rep.Steps {
			if s.Name == "audit:aka" || s.Name == "audit:toxicity" {
				t.Errorf("disabled audit ran: %s", s.Name)
			}
		}
		if len(rep.Steps) != 7 {
			t.Errorf("steps = %d, want build + validate + 5 audits", len(rep.Steps))
		}
	})
}
