package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/index"
	"github.com/plantfolio/plantkit/internal/ui"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the record index",
	Long: `Reads the source stores and rebuilds the SQLite record index under
.plantkit/. The index is derived state; deleting the directory loses
nothing.

Examples:
  plantkit reindex`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := getDataset()

		db, wasReset, err := index.OpenWithRebuild(ds)
		if err != nil {
			if errors.Is(err, index.ErrIndexLocked) {
				return handleError(ErrIndexLocked, err, "Another plantkit process is indexing; retry in a moment")
			}
			return handleError(ErrDatabaseError, err, "Delete .plantkit/ and retry")
		}
		defer db.Close()

		if wasReset && !jsonOutput {
			fmt.Println(ui.Info("Index schema was outdated, rebuilt from scratch."))
		}

		n, err := db.Rebuild(ds)
		if err != nil {
			return handleError(ErrDatabaseError, err, "Check that the source files are valid JSON")
		}
		if err := db.Analyze(); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"rows":  n,
				"reset": wasReset,
			}, &Meta{Count: n})
			return nil
		}

		fmt.Println(ui.Success(fmt.Sprintf("indexed %s", ui.Count(n, "row", "rows"))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
