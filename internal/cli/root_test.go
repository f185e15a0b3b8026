package cli

import (
	"testing"

	"github.com/plantfolio/plantkit/internal/testutil"
)

func TestDatasetAt(t *testing.T) {
	d := testutil.NewTestDataset(t).WithPlant("pothos-golden").Build()
	if !datasetAt(d.Dataset().Root) {
		t.Fatal("datasetAt = false for a built dataset")
	}
	if datasetAt(t.TempDir()) {
		t.Fatal("datasetAt = true for an empty directory")
	}
}
