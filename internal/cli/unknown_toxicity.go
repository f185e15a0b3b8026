package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/audit"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	unknownToxicityCategory string
	unknownToxicityOutput   string
)

var unknownToxicityCmd = &cobra.Command{
	Use:   "unknown-toxicity",
	Short: "List plants whose toxicity is still unknown",
	Long: `Builds the research worklist: every plant with plantToxicity "unknown",
grouped by category with its common names for ASPCA lookups.

Informational; never fails.

Examples:
  plantkit audit unknown-toxicity
  plantkit audit unknown-toxicity --category "Houseplants - Succulents"
  plantkit audit unknown-toxicity --output worklist.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if unknownToxicityCategory != "" && !schema.ValidCategory(unknownToxicityCategory) {
			return handleErrorMsg(ErrCategoryUnknown,
				fmt.Sprintf("unknown category %q", unknownToxicityCategory),
				"Category names are exact, e.g. \"Houseplants - Succulents\"")
		}

		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		rep := audit.UnknownToxicity(src, unknownToxicityCategory)

		if isJSONOutput() {
			outputSuccess(rep, &Meta{Count: rep.Total})
			return nil
		}

		var b strings.Builder
		if rep.Total == 0 {
			fmt.Fprintf(&b, "%s\n", ui.Success("no plants with unknown toxicity"))
		} else {
			fmt.Fprintf(&b, "%s\n", ui.Header(fmt.Sprintf("Unknown toxicity %s", ui.Count(rep.Total, "plant", "plants"))))
			cats := make([]string, 0, len(rep.ByCategory))
			for cat := range rep.ByCategory {
				cats = append(cats, cat)
			}
			sort.Strings(cats)
			for _, cat := range cats {
				fmt.Fprintf(&b, "\n%s\n", ui.Bold.Render(cat))
				for _, e := range rep.ByCategory[cat] {
					if e.CommonExamples != "" {
						fmt.Fprintf(&b, "  %s  %s\n", ui.PlantID(e.ID), ui.Muted.Render(e.CommonExamples))
					} else {
						fmt.Fprintf(&b, "  %s\n", ui.PlantID(e.ID))
					}
				}
			}
		}
		text := b.String()

		if unknownToxicityOutput != "" {
			if err := os.WriteFile(unknownToxicityOutput, []byte(stripANSI(text)), 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			fmt.Printf("Worklist written to %s\n", ui.FilePath(unknownToxicityOutput))
			return nil
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	unknownToxicityCmd.Flags().StringVar(&unknownToxicityCategory, "category", "", "Limit to one category")
	unknownToxicityCmd.Flags().StringVarP(&unknownToxicityOutput, "output", "o", "", "Write the worklist to a file")
	auditCmd.AddCommand(unknownToxicityCmd)
}
