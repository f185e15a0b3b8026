package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/index"
	"github.com/plantfolio/plantkit/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	Long: `Displays record counts from the index: plants, rows per locale, and
breakdowns by category and toxicity.

Examples:
  plantkit stats
  plantkit stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := getDataset()
		start := time.Now()

		db, _, err := index.OpenWithRebuild(ds)
		if err != nil {
			return handleError(ErrDatabaseError, err, "Delete .plantkit/ and retry")
		}
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			return handleError(ErrDatabaseError, err, "Run 'plantkit reindex' to rebuild the index")
		}
		if stats.Rows == 0 {
			if _, err := db.Rebuild(ds); err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			if stats, err = db.Stats(); err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(stats, &Meta{QueryTimeMs: elapsed})
			return nil
		}

		fmt.Println(ui.Header("Dataset statistics"))
		fmt.Printf("%s %s\n", ui.Muted.Render("Plants:"), ui.Accent.Render(fmt.Sprintf("%d", stats.Plants)))
		fmt.Printf("%s %s\n", ui.Muted.Render("Rows:  "), ui.Accent.Render(fmt.Sprintf("%d", stats.Rows)))

		fmt.Printf("\n%s\n", ui.Bold.Render("By locale"))
		printCountMap(stats.Locales)
		fmt.Printf("\n%s\n", ui.Bold.Render("By category"))
		printCountMap(stats.Categories)
		fmt.Printf("\n%s\n", ui.Bold.Render("By toxicity"))
		printCountMap(stats.Toxicity)

		return nil
	},
}

func printCountMap(m map[string]int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-36s %s\n", k, ui.Accent.Render(fmt.Sprintf("%d", m[k])))
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
