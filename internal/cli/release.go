package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/release"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	releaseSort   bool
	releaseHeader bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run the pre-release pipeline",
	Long: `Runs every release gate in order: dist build, schema and structure
validation, and each active content audit. A failing step does not stop
the pipeline; the report covers every step so everything can be fixed in
one pass.

With --sort, the source stores are rewritten into canonical order first.

Examples:
  plantkit release
  plantkit release --sort --header`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := release.Run(getDataset(), release.Options{Sort: releaseSort, Header: releaseHeader})
		if err != nil {
			return handleError(ErrReleaseFailed, err, "Check that the source files are valid JSON")
		}

		if isJSONOutput() {
			if !rep.OK {
				outputError(ErrReleaseFailed, "release checks failed", rep, "")
				return nil
			}
			outputSuccess(rep, &Meta{Count: len(rep.Steps)})
			return nil
		}

		fmt.Println(ui.Header("Release pipeline"))
		for _, step := range rep.Steps {
			if step.OK {
				if step.Detail != "" {
					fmt.Printf("  %s %s\n", ui.Success(step.Name), ui.Muted.Render(step.Detail))
				} else {
					fmt.Printf("  %s\n", ui.Success(step.Name))
				}
				continue
			}
			fmt.Printf("  %s\n", ui.Error(step.Name))
			for _, p := range step.Problems {
				fmt.Printf("      %s\n", p)
			}
		}

		if !rep.OK {
			fmt.Println()
			return handleErrorMsg(ErrReleaseFailed, "release checks failed", "Fix the failing steps and re-run")
		}
		fmt.Printf("\n%s\n", ui.Success("ready to release"))
		return nil
	},
}

func init() {
	releaseCmd.Flags().BoolVar(&releaseSort, "sort", false, "Canonically sort the source stores first")
	releaseCmd.Flags().BoolVar(&releaseHeader, "header", false, "Prepend a _metadata element to each dist file")
	rootCmd.AddCommand(releaseCmd)
}
