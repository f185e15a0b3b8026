package index

import (
	"errors"
	"testing"

	"github.com/plantfolio/plantkit/internal/testutil"
)

func buildIndexed(t *testing.T) (*testutil.TestDataset, *Database) {
	t.Helper()
	d := testutil.NewTestDataset(t).
		WithPlant("pothos-golden").
		WithPlant("monstera-deliciosa").
		Build()

	db, err := Open(d.Dataset())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Rebuild(d.Dataset()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return d, db
}

func TestRebuild(t *testing.T) {
	t.Run("indexes every locale", func(t *testing.T) {
		d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()
		db, err := Open(d.Dataset())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer db.Close()

		n, err := db.Rebuild(d.Dataset())
		if err != nil {
			t.Fatalf("Rebuild: %v", err)
		}
		if n != 3 {
			t.Errorf("rows = %d, want one per locale", n)
		}
	})

	t.Run("skips entries without metadata", func(t *testing.T) {
		d := testutil.NewTestDataset(t).
			WithMetadata("pothos-golden", testutil.ValidMetadata()).
			WithLanguage("en", testutil.LanguageEntry("pothos-golden", "en")).
			WithLanguage("en", testutil.LanguageEntry("ghost-fern", "en")).
			Build()
		db, err := Open(d.Dataset())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer db.Close()

		n, err := db.Rebuild(d.Dataset())
		if err != nil {
			t.Fatalf("Rebuild: %v", err)
		}
		if n != 1 {
			t.Errorf("rows = %d, want 1", n)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		d, db := buildIndexed(t)
		n, err := db.Rebuild(d.Dataset())
		if err != nil {
			t.Fatalf("second Rebuild: %v", err)
		}
		if n != 6 {
			t.Errorf("rows = %d, want 6", n)
		}
		stats, err := db.Stats()
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		if stats.Rows != 6 {
			t.Errorf("rows after rebuild = %d, want 6", stats.Rows)
		}
	})
}

func TestOpenWithRebuild(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()

	db, reset, err := OpenWithRebuild(d.Dataset())
	if err != nil {
		t.Fatalf("OpenWithRebuild: %v", err)
	}
	if reset {
		t.Error("fresh database should not report a reset")
	}
	db.Close()

	// Corrupt the version so the next open has to recreate the file.
	db2, err := Open(d.Dataset())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := db2.DB().Exec("UPDATE meta SET version = 1"); err != nil {
		t.Fatalf("downgrade version: %v", err)
	}
	db2.Close()

	db3, reset, err := OpenWithRebuild(d.Dataset())
	if err != nil {
		t.Fatalf("OpenWithRebuild after downgrade: %v", err)
	}
	defer db3.Close()
	if !reset {
		t.Error("version mismatch should reset the database")
	}
}

func TestGet(t *testing.T) {
	d, db := buildIndexed(t)
	_ = d

	p, err := db.Get("pothos-golden", "en")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.TypeName != "Name pothos-golden" || p.Category != "Houseplants - Low Maintenance" {
		t.Errorf("plant = %+v", p)
	}

	if _, err := db.Get("missing", "en"); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("err = %v, want ErrPlantNotFound", err)
	}
}
