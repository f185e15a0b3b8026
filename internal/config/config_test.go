package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDatasetPath(t *testing.T) {
	cfg := &Config{
		DefaultDataset: "plants",
		Datasets: map[string]string{
			"plants": "/data/plants",
			"trial":  "/data/trial",
		},
	}

	t.Run("named dataset", func(t *testing.T) {
		path, err := cfg.GetDatasetPath("trial")
		if err != nil || path != "/data/trial" {
			t.Errorf("path = %q err = %v", path, err)
		}
	})

	t.Run("default dataset", func(t *testing.T) {
		path, err := cfg.GetDefaultDatasetPath()
		if err != nil || path != "/data/plants" {
			t.Errorf("path = %q err = %v", path, err)
		}
	})

	t.Run("unknown dataset", func(t *testing.T) {
		if _, err := cfg.GetDatasetPath("nope"); err == nil {
			t.Error("expected error for unknown dataset")
		}
	})

	t.Run("no default configured", func(t *testing.T) {
		empty := &Config{}
		if _, err := empty.GetDefaultDatasetPath(); err == nil {
			t.Error("expected error with no default")
		}
	})
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `default_dataset = "plants"

[datasets]
plants = "/data/plants"

[ui]
accent = "#FF8800"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DefaultDataset != "plants" {
		t.Errorf("default = %q", cfg.DefaultDataset)
	}
	if cfg.Datasets["plants"] != "/data/plants" {
		t.Errorf("datasets = %v", cfg.Datasets)
	}
	if cfg.UI.Accent != "#FF8800" {
		t.Errorf("accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("default_dataset = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveTo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	cfg := &Config{
		DefaultDataset: "plants",
		Datasets:       map[string]string{"plants": "/data/plants"},
		UI:             UIConfig{Accent: "none"},
	}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if reloaded.DefaultDataset != "plants" || reloaded.UI.Accent != "none" {
		t.Errorf("round trip mismatch: %+v", reloaded)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "accent = \"\"") {
		t.Error("empty values should be omitted")
	}
}

func TestSaveToEmptyPath(t *testing.T) {
	if err := SaveTo("", &Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}
