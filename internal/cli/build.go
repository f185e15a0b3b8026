package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/index"
	"github.com/plantfolio/plantkit/internal/merge"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/ui"
)

var buildHeader bool

// buildResult is the JSON payload of a build run.
type buildResult struct {
	Total   int                 `json:"total"`
	Locales []buildLocaleResult `json:"locales"`
	Clean   bool                `json:"clean"`
}

type buildLocaleResult struct {
	Locale          string   `json:"locale"`
	Path            string   `json:"path,omitempty"`
	Merged          int      `json:"merged"`
	SourceMissing   bool     `json:"sourceMissing,omitempty"`
	MissingMetadata []string `json:"missingMetadata,omitempty"`
	MissingLanguage []string `json:"missingLanguage,omitempty"`
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Merge the source stores into dist files",
	Long: `Joins the metadata store with each locale's language store and writes one
merged JSON file per locale under dist/. The record index is refreshed
afterwards so query and stats reflect the new build.

Identifiers present on only one side are excluded from output and reported;
they fail the build without aborting it.

Examples:
  plantkit build
  plantkit build --header`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := getDataset()

		rep, err := merge.Run(ds, merge.Options{Header: buildHeader})
		if err != nil {
			return handleError(ErrBuildFailed, err, "Check that the source files are valid JSON")
		}

		refreshIndex(ds)

		if isJSONOutput() {
			res := buildResult{Total: rep.Total, Clean: rep.Clean(), Locales: []buildLocaleResult{}}
			for _, r := range rep.Results {
				res.Locales = append(res.Locales, buildLocaleResult{
					Locale:          r.Locale.Code,
					Path:            r.Path,
					Merged:          r.Merged,
					SourceMissing:   r.SourceMissing,
					MissingMetadata: r.MissingMetadata,
					MissingLanguage: r.MissingLanguage,
				})
			}
			if !res.Clean {
				outputError(ErrBuildFailed, "build completed with cross-reference gaps", res, "Run 'plantkit validate --xref' for detail")
				return nil
			}
			outputSuccess(res, &Meta{Count: rep.Total})
			return nil
		}

		for _, r := range rep.Results {
			if r.SourceMissing {
				fmt.Println(ui.Warningf("%s: language file missing, skipped", r.Locale.Code))
				continue
			}
			fmt.Printf("%s %s %s\n", ui.Success(r.Locale.Code), ui.FilePath(r.Path), ui.Count(r.Merged, "record", "records"))
			for _, id := range r.MissingMetadata {
				fmt.Printf("  %s\n", ui.Error(fmt.Sprintf("%s has no metadata record", ui.PlantID(id))))
			}
			for _, id := range r.MissingLanguage {
				fmt.Printf("  %s\n", ui.Error(fmt.Sprintf("%s has no %s language entry", ui.PlantID(id), r.Locale.Code)))
			}
		}
		fmt.Printf("\nmerged %s\n", ui.Count(rep.Total, "record", "records"))

		if !rep.Clean() {
			return handleErrorMsg(ErrBuildFailed, "build completed with cross-reference gaps", "Run 'plantkit validate --xref' for detail")
		}
		return nil
	},
}

// refreshIndex rebuilds the record index after a build. Failures are
// non-fatal; the dist files are already on disk.
func refreshIndex(ds store.Dataset) {
	db, _, err := index.OpenWithRebuild(ds)
	if err != nil {
		if !jsonOutput {
			fmt.Println(ui.Warningf("index not refreshed: %v", err))
		}
		return
	}
	defer db.Close()
	if _, err := db.Rebuild(ds); err != nil && !jsonOutput {
		fmt.Println(ui.Warningf("index not refreshed: %v", err))
	}
}

func init() {
	buildCmd.Flags().BoolVar(&buildHeader, "header", false, "Prepend a _metadata element to each dist file")
	rootCmd.AddCommand(buildCmd)
}
