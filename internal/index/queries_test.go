package index

import (
	"testing"

	"github.com/plantfolio/plantkit/internal/testutil"
)

func TestStats(t *testing.T) {
	_, db := buildIndexed(t)

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Plants != 2 || stats.Rows != 6 {
		t.Errorf("plants = %d rows = %d, want 2/6", stats.Plants, stats.Rows)
	}
	if stats.Locales["en"] != 2 || stats.Locales["zh-Hans"] != 2 {
		t.Errorf("locales = %v", stats.Locales)
	}
	if stats.Categories["Houseplants - Low Maintenance"] != 2 {
		t.Errorf("categories = %v", stats.Categories)
	}
	if stats.Toxicity["nonToxic"] != 2 {
		t.Errorf("toxicity = %v", stats.Toxicity)
	}
}

func TestQuery(t *testing.T) {
	outdoor := testutil.ValidMetadata()
	outdoor["category"] = "Outdoor - Trees"
	outdoor["plantToxicity"] = "toxic"

	d := testutil.NewTestDataset(t).
		WithPlant("pothos-golden").
		WithMetadata("maple-japanese", outdoor).
		WithLanguage("en", testutil.LanguageEntry("maple-japanese", "en")).
		Build()

	db, err := Open(d.Dataset())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if _, err := db.Rebuild(d.Dataset()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	t.Run("locale filter", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{Locale: "en"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 2 {
			t.Fatalf("plants = %d, want 2", len(plants))
		}
		if plants[0].ID != "pothos-golden" {
			t.Errorf("houseplant should sort before outdoor tree, got %s first", plants[0].ID)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{Locale: "en", Category: "Outdoor - Trees"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 1 || plants[0].ID != "maple-japanese" {
			t.Errorf("plants = %v", plants)
		}
	})

	t.Run("toxicity filter", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{Locale: "en", Toxicity: "toxic"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 1 || plants[0].ID != "maple-japanese" {
			t.Errorf("plants = %v", plants)
		}
	})

	t.Run("text match", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{Locale: "en", Match: "MAPLE"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 1 || plants[0].ID != "maple-japanese" {
			t.Errorf("case-insensitive match failed: %v", plants)
		}
	})

	t.Run("limit", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{Locale: "en", Limit: 1})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 1 {
			t.Errorf("plants = %d, want 1", len(plants))
		}
	})

	t.Run("no filters returns all rows", func(t *testing.T) {
		plants, err := db.Query(QueryOptions{})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(plants) != 4 {
			t.Errorf("plants = %d, want 4", len(plants))
		}
	})
}
