package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/audit"
	"github.com/plantfolio/plantkit/internal/ui"
)

var ensureAkaDryRun bool

// akaChangeView is the JSON shape of one planned alias rewrite.
type akaChangeView struct {
	Locale   string `json:"locale"`
	PlantID  string `json:"plantId"`
	Value    string `json:"value"`
	Nickname bool   `json:"nickname"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

var ensureAkaCmd = &cobra.Command{
	Use:   "ensure-aka",
	Short: "Give every record a complementary alias block",
	Long: `Rewrites each description's alias block so it complements the display
name: records shown under a nickname get their scientific name as alias,
records shown under a formal name get their nicknames.

Idempotent; records that already carry the complementary alias are left
alone. With --dry-run the plan is printed and nothing is written.

Examples:
  plantkit audit ensure-aka --dry-run
  plantkit audit ensure-aka`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}

		changes := audit.PlanComplementaryAka(src)
		views := make([]akaChangeView, 0, len(changes))
		for _, c := range changes {
			views = append(views, akaChangeView{
				Locale:   c.Locale,
				PlantID:  c.PlantID,
				Value:    c.Value,
				Nickname: c.Nickname,
				Old:      c.Old,
				New:      c.New,
			})
		}

		if !ensureAkaDryRun && len(changes) > 0 {
			if _, err := audit.ApplyComplementaryAka(src); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"changes": views,
				"applied": !ensureAkaDryRun,
			}, &Meta{Count: len(views)})
			return nil
		}

		if len(changes) == 0 {
			fmt.Println(ui.Success("every record already carries a complementary alias"))
			return nil
		}
		for _, c := range changes {
			kind := "nicknames"
			if c.Nickname {
				kind = "scientific name"
			}
			fmt.Printf("%s (%s): %s %s\n", ui.PlantID(c.PlantID), c.Locale, kind, ui.Accent.Render(c.Value))
		}
		if ensureAkaDryRun {
			fmt.Printf("\ndry run: planned %s, nothing written\n", ui.Count(len(changes), "change", "changes"))
		} else {
			fmt.Printf("\n%s\n", ui.Success(fmt.Sprintf("applied %s", ui.Count(len(changes), "change", "changes"))))
		}
		return nil
	},
}

func init() {
	ensureAkaCmd.Flags().BoolVar(&ensureAkaDryRun, "dry-run", false, "Print the plan without writing")
	auditCmd.AddCommand(ensureAkaCmd)
}
