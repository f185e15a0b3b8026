package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/check"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	validateSchema    bool
	validateStructure bool
	validateXref      bool
	validateVerbose   bool
	validateOutput    string
)

// issueView is the JSON shape of one validation issue.
type issueView struct {
	Check   string `json:"check"`
	Level   string `json:"level"`
	PlantID string `json:"plantId,omitempty"`
	Message string `json:"message"`
}

// validateResult is the JSON payload of a validate run.
type validateResult struct {
	Issues   []issueView    `json:"issues"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
	PerCheck map[string]int `json:"perCheck,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the source stores and dist files",
	Long: `Runs the schema checks over the metadata store, cross-references every
language store against it, and verifies the structure of built dist files.

With no flags all three passes run. Flags narrow the run to one pass.
Check IDs can be disabled per dataset in source/checks.yaml.

Examples:
  plantkit validate
  plantkit validate --schema
  plantkit validate --xref --verbose
  plantkit validate --output report.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := getDataset()

		// No flags means everything.
		all := !validateSchema && !validateStructure && !validateXref

		manifest, err := schema.LoadManifest(ds.ManifestPath())
		if err != nil {
			return handleError(ErrManifestInvalid, err, "Fix or remove source/checks.yaml")
		}
		v := check.NewValidator(manifest)

		var issues []check.Issue

		meta, err := store.LoadMetadata(ds.MetadataPath())
		if err != nil {
			return handleError(ErrStoreInvalid, err, "Check that the metadata store is valid JSON")
		}

		if all || validateSchema {
			issues = append(issues, v.ValidateMetadata(meta)...)
			issues = append(issues, v.CheckHeaderCount(meta)...)
		}

		if all || validateXref {
			for _, loc := range schema.Locales {
				lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
				if err != nil {
					if errors.Is(err, fs.ErrNotExist) {
						continue
					}
					return handleError(ErrStoreInvalid, err, "")
				}
				issues = append(issues, v.CrossReference(meta, lang)...)
			}
		}

		if all || validateStructure {
			for _, loc := range schema.Locales {
				path := ds.DistPath(loc)
				if _, err := os.Stat(path); err != nil {
					continue
				}
				issues = append(issues, check.CheckDistStructure(path, loc)...)
			}
		}

		errCount := check.Errors(issues)
		warnCount := len(issues) - errCount

		if isJSONOutput() {
			res := validateResult{Issues: []issueView{}, Errors: errCount, Warnings: warnCount}
			for _, is := range issues {
				res.Issues = append(res.Issues, issueView{
					Check:   is.Check,
					Level:   is.Level.String(),
					PlantID: is.PlantID,
					Message: is.Message,
				})
			}
			if validateVerbose {
				res.PerCheck = check.PerCheck(issues)
			}
			if errCount > 0 {
				outputError(ErrValidationFailed, fmt.Sprintf("%d validation errors", errCount), res, "")
				return nil
			}
			outputSuccess(res, &Meta{Count: len(issues)})
			return nil
		}

		text := renderIssues(issues, errCount, warnCount, validateVerbose)
		if validateOutput != "" {
			if err := os.WriteFile(validateOutput, []byte(stripANSI(text)), 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			fmt.Printf("Report written to %s\n", ui.FilePath(validateOutput))
		} else {
			fmt.Print(text)
		}

		if errCount > 0 {
			return handleErrorMsg(ErrValidationFailed, fmt.Sprintf("%d validation errors", errCount), "")
		}
		return nil
	},
}

func renderIssues(issues []check.Issue, errCount, warnCount int, verbose bool) string {
	var b strings.Builder
	if len(issues) == 0 {
		fmt.Fprintf(&b, "%s\n", ui.Success("all checks passed"))
		return b.String()
	}
	for _, is := range issues {
		line := is.String()
		if is.Level == check.LevelError {
			fmt.Fprintf(&b, "%s\n", ui.Error(line))
		} else {
			fmt.Fprintf(&b, "%s\n", ui.Warning(line))
		}
	}
	if verbose {
		per := check.PerCheck(issues)
		ids := make([]string, 0, len(per))
		for id := range per {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Fprintf(&b, "\n%s\n", ui.Header("Per check"))
		for _, id := range ids {
			fmt.Fprintf(&b, "  %-4s %d\n", id, per[id])
		}
	}
	fmt.Fprintf(&b, "\n%s\n", ui.ErrorWarningCounts(errCount, warnCount))
	return b.String()
}

func init() {
	validateCmd.Flags().BoolVar(&validateSchema, "schema", false, "Run the schema checks over the metadata store")
	validateCmd.Flags().BoolVar(&validateStructure, "structure", false, "Verify the structure of built dist files")
	validateCmd.Flags().BoolVar(&validateXref, "xref", false, "Cross-reference language stores against metadata")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Include per-check issue counts")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Write the report to a file")
	rootCmd.AddCommand(validateCmd)
}
