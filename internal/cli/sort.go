package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/release"
	"github.com/plantfolio/plantkit/internal/ui"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Rewrite the source stores in canonical order",
	Long: `Sorts the metadata store and every language store by category position,
then lowercase id, and writes them back. Language entries whose id is
unknown to the metadata store keep their relative order at the end.

Sorting before committing keeps diffs small and dist builds stable.

Examples:
  plantkit sort`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := release.Sort(getDataset())
		if err != nil {
			return handleError(ErrStoreInvalid, err, "Check that the source files are valid JSON")
		}

		if isJSONOutput() {
			outputSuccess(res, &Meta{Count: res.Plants})
			return nil
		}

		fmt.Println(ui.Success(fmt.Sprintf("sources in canonical order %s", ui.Count(res.Plants, "plant", "plants"))))
		codes := make([]string, 0, len(res.Locales))
		for code := range res.Locales {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Printf("  %s: %s\n", code, ui.Count(res.Locales[code], "entry", "entries"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
}
