package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/index"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	queryLocale   string
	queryCategory string
	queryToxicity string
	queryLight    string
	queryMatch    string
	queryLimit    int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query indexed plant records",
	Long: `Queries the record index with optional filters. Results come back in
canonical order: category position first, then id.

Examples:
  plantkit query --locale en
  plantkit query --category "Outdoor - Trees" --toxicity toxic
  plantkit query --match pothos --limit 5
  plantkit query --light outdoorFullSun --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if queryLocale != "" {
			loc, ok := schema.LocaleByCode(queryLocale)
			if !ok {
				return handleErrorMsg(ErrLocaleUnknown,
					fmt.Sprintf("unknown locale %q", queryLocale), "Use en, es, or zh")
			}
			queryLocale = loc.Code
		}

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
		}

		plants, err := db.Query(index.QueryOptions{
			Locale:   queryLocale,
			Category: queryCategory,
			Toxicity: queryToxicity,
			Light:    queryLight,
			Match:    queryMatch,
			Limit:    queryLimit,
		})
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(plants, &Meta{Count: len(plants), QueryTimeMs: elapsed})
			return nil
		}

		if len(plants) == 0 {
			fmt.Println(ui.Info("no matching plants"))
			return nil
		}
		for _, p := range plants {
			fmt.Printf("%s (%s)  %s\n", ui.PlantID(p.ID), p.Locale, ui.Bold.Render(p.TypeName))
			fmt.Printf("  %s\n", ui.Muted.Render(p.Category))
			if p.Toxicity != "" || p.Light != "" {
				fmt.Printf("  %s\n", ui.Muted.Render(fmt.Sprintf("toxicity: %s  light: %s", p.Toxicity, p.Light)))
			}
		}
		fmt.Printf("\n%s\n", ui.Count(len(plants), "row", "rows"))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryLocale, "locale", "l", "", "Filter by locale (en, es, zh)")
	queryCmd.Flags().StringVar(&queryCategory, "category", "", "Filter by exact category name")
	queryCmd.Flags().StringVar(&queryToxicity, "toxicity", "", "Filter by toxicity classification")
	queryCmd.Flags().StringVar(&queryLight, "light", "", "Filter by light requirement")
	queryCmd.Flags().StringVar(&queryMatch, "match", "", "Case-insensitive substring over names and descriptions")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum rows to return (0 = no limit)")
	rootCmd.AddCommand(queryCmd)
}
