package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (d *TestDataset) AssertFileExists(relPath string) {
	d.t.Helper()
	if _, err := os.Stat(filepath.Join(d.Root, relPath)); os.IsNotExist(err) {
		d.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (d *TestDataset) AssertFileNotExists(relPath string) {
	d.t.Helper()
	if _, err := os.Stat(filepath.Join(d.Root, relPath)); err == nil {
		d.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (d *TestDataset) AssertFileContains(relPath, substr string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		d.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (d *TestDataset) AssertFileNotContains(relPath, substr string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	if strings.Contains(content, substr) {
		d.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}
