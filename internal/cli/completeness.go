package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/check"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	completenessVerbose bool
	completenessOutput  string
)

// plantCompleteness is the JSON shape of one plant's check outcome.
type plantCompleteness struct {
	ID       string      `json:"id"`
	Category string      `json:"category,omitempty"`
	Issues   []issueView `json:"issues,omitempty"`
}

// completenessResult is the JSON payload of the completeness audit.
type completenessResult struct {
	Plants    int                 `json:"plants"`
	Passing   int                 `json:"passing"`
	Failing   []plantCompleteness `json:"failing"`
	CrossRefs []issueView         `json:"crossRefs,omitempty"`
}

var completenessCmd = &cobra.Command{
	Use:   "completeness",
	Short: "Per-plant report over the full check matrix",
	Long: `Runs every schema check against each metadata record and reports the
outcome plant by plant, then cross-references each language store.

With --verbose, passing plants are listed too.

Examples:
  plantkit audit completeness
  plantkit audit completeness --verbose --output report.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := getDataset()

		manifest, err := schema.LoadManifest(ds.ManifestPath())
		if err != nil {
			return handleError(ErrManifestInvalid, err, "Fix or remove source/checks.yaml")
		}
		v := check.NewValidator(manifest)

		meta, err := store.LoadMetadata(ds.MetadataPath())
		if err != nil {
			return handleError(ErrStoreInvalid, err, "Check that the metadata store is valid JSON")
		}

		res := completenessResult{Plants: len(meta.Records), Failing: []plantCompleteness{}}
		var passing []string
		errorPlants := 0
		for _, id := range meta.SortedIDs() {
			rec := meta.Records[id]
			issues := v.ValidateRecord(id, rec)
			if len(issues) == 0 {
				res.Passing++
				passing = append(passing, id)
				continue
			}
			if check.Errors(issues) > 0 {
				errorPlants++
			}
			pc := plantCompleteness{ID: id, Category: rec.String("category")}
			for _, is := range issues {
				pc.Issues = append(pc.Issues, issueView{Check: is.Check, Level: is.Level.String(), Message: is.Message})
			}
			res.Failing = append(res.Failing, pc)
		}

		var xrefs []check.Issue
		for _, loc := range schema.Locales {
			lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return handleError(ErrStoreInvalid, err, "")
			}
			xrefs = append(xrefs, v.CrossReference(meta, lang)...)
		}
		for _, is := range xrefs {
			res.CrossRefs = append(res.CrossRefs, issueView{
				Check:   is.Check,
				Level:   is.Level.String(),
				PlantID: is.PlantID,
				Message: is.Message,
			})
		}

		failed := errorPlants > 0 || check.Errors(xrefs) > 0

		if isJSONOutput() {
			if failed {
				outputError(ErrValidationFailed,
					fmt.Sprintf("%d of %d plants incomplete", len(res.Failing), res.Plants), res, "")
				return nil
			}
			outputSuccess(res, &Meta{Count: res.Plants})
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", ui.Header("Metadata completeness"))
		for _, pc := range res.Failing {
			fmt.Fprintf(&b, "\n%s %s\n", ui.Error(pc.ID), ui.Muted.Render(pc.Category))
			for _, is := range pc.Issues {
				fmt.Fprintf(&b, "  [%s] %s\n", is.Check, is.Message)
			}
		}
		if completenessVerbose {
			for _, id := range passing {
				fmt.Fprintf(&b, "%s\n", ui.Success(id))
			}
		}
		if len(xrefs) > 0 {
			fmt.Fprintf(&b, "\n%s\n", ui.Header("Cross-references"))
			for _, is := range xrefs {
				fmt.Fprintf(&b, "  %s\n", ui.Error(is.String()))
			}
		}
		fmt.Fprintf(&b, "\n%d of %d plants complete\n", res.Passing, res.Plants)
		text := b.String()

		if completenessOutput != "" {
			if err := os.WriteFile(completenessOutput, []byte(stripANSI(text)), 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			fmt.Printf("Report written to %s\n", ui.FilePath(completenessOutput))
		} else {
			fmt.Print(text)
		}

		if failed {
			return handleErrorMsg(ErrValidationFailed,
				fmt.Sprintf("%d of %d plants incomplete", len(res.Failing), res.Plants), "")
		}
		return nil
	},
}

func init() {
	completenessCmd.Flags().BoolVarP(&completenessVerbose, "verbose", "v", false, "List passing plants too")
	completenessCmd.Flags().StringVarP(&completenessOutput, "output", "o", "", "Write the report to a file")
	auditCmd.AddCommand(completenessCmd)
}
