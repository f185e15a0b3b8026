package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	extractLocale string
	extractOutput string
)

var extractCmd = &cobra.Command{
	Use:   "extract CATEGORY",
	Short: "Extract one category's language entries",
	Long: `Collects the language entries of every plant in the given category, in
canonical order, and writes them as a JSON array to stdout or a file.

Examples:
  plantkit extract "Houseplants - Succulents"
  plantkit extract "Outdoor - Trees" --locale es --output trees_es.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category := args[0]
		if !schema.ValidCategory(category) {
			return handleErrorMsg(ErrCategoryUnknown,
				fmt.Sprintf("unknown category %q", category),
				"Category names are exact, e.g. \"Houseplants - Succulents\"")
		}
		loc, ok := schema.LocaleByCode(extractLocale)
		if !ok {
			return handleErrorMsg(ErrLocaleUnknown,
				fmt.Sprintf("unknown locale %q", extractLocale), "Use en, es, or zh")
		}

		ds := getDataset()
		meta, err := store.LoadMetadata(ds.MetadataPath())
		if err != nil {
			return handleError(ErrStoreInvalid, err, "Check that the metadata store is valid JSON")
		}

		inCategory := make(map[string]struct{})
		for id, rec := range meta.Records {
			if rec.String("category") == category {
				inCategory[id] = struct{}{}
			}
		}
		if len(inCategory) == 0 {
			return handleErrorMsg(ErrCategoryEmpty,
				fmt.Sprintf("no plants in category %q", category), "")
		}

		lang, err := store.LoadLanguage(ds.LanguagePath(loc), loc)
		if err != nil {
			return handleError(ErrStoreInvalid, err, "")
		}

		var entries []store.Record
		for _, e := range lang.Entries {
			if _, ok := inCategory[e.ID()]; ok {
				entries = append(entries, e)
			}
		}

		data, err := store.MarshalRecords(entries, schema.LanguageKeyOrder)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if extractOutput != "" {
			if err := os.WriteFile(extractOutput, data, 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			if !isJSONOutput() {
				fmt.Printf("wrote %s to %s\n", ui.Count(len(entries), "entry", "entries"), ui.FilePath(extractOutput))
			}
			return nil
		}

		// The extract itself is JSON; --json changes nothing here.
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractLocale, "locale", "l", "en", "Locale to extract (en, es, zh)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the array to a file")
	rootCmd.AddCommand(extractCmd)
}
