package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/audit"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	auditOutput        string
	auditAllFull       bool
	auditSyncTypeNames bool
	auditAkaFix        bool
)

// auditors maps subcommand names to their manifest ID and run function.
var auditors = []struct {
	id   string
	name string
	run  func(*audit.Source) []audit.Finding
}{
	{schema.AuditDuplicates, "duplicates", audit.Duplicates},
	{schema.AuditDescriptions, "descriptions", audit.Descriptions},
	{schema.AuditSync, "sync", func(s *audit.Source) []audit.Finding {
		return audit.Sync(s, audit.SyncOptions{CheckTypeNames: auditSyncTypeNames})
	}},
	{schema.AuditLanguage, "language", audit.Language},
	{schema.AuditNames, "names", audit.Names},
	{schema.AuditAka, "aka", audit.Aka},
	{schema.AuditToxicityAlign, "toxicity", audit.ToxicityAlignment},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run content-quality audits over the source stores",
	Long: `Audits are heuristics over the source content: duplicate names,
placeholder descriptions, translation gaps, wrong-language text, outdated
scientific names, alias consistency, and toxicity claims.

Hard findings fail the audit; advisory findings are review prompts.

Examples:
  plantkit audit all
  plantkit audit duplicates
  plantkit audit aka --fix
  plantkit audit sync --check-typenames`,
}

// auditSummary is the JSON payload of 'audit all'.
type auditSummary struct {
	Audits []auditSummaryEntry `json:"audits"`
	Failed bool                `json:"failed"`
}

type auditSummaryEntry struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Findings int           `json:"findings"`
	Hard     int           `json:"hard"`
	Detail   []findingView `json:"detail,omitempty"`
}

var auditAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every active auditor and summarize",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := schema.LoadManifest(getDataset().ManifestPath())
		if err != nil {
			return handleError(ErrManifestInvalid, err, "Fix or remove source/checks.yaml")
		}
		src, err := loadAuditSource()
		if src == nil {
			return err
		}

		summary := auditSummary{Audits: []auditSummaryEntry{}}
		var all []audit.Finding
		for _, a := range auditors {
			if !manifest.Active(a.id) {
				continue
			}
			findings := a.run(src)
			hard := 0
			for _, f := range findings {
				if f.Severity == audit.Hard {
					hard++
				}
			}
			entry := auditSummaryEntry{ID: a.id, Name: a.name, Findings: len(findings), Hard: hard}
			if auditAllFull || isJSONOutput() {
				entry.Detail = newAuditResult(findings).Findings
			}
			summary.Audits = append(summary.Audits, entry)
			all = append(all, findings...)
		}
		summary.Failed = audit.Failed(all)

		if isJSONOutput() {
			if summary.Failed {
				outputError(ErrAuditFailed, "one or more audits failed", summary, "")
				return nil
			}
			outputSuccess(summary, &Meta{Count: len(all)})
			return nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", ui.Header("Content audits"))
		for _, e := range summary.Audits {
			switch {
			case e.Hard > 0:
				fmt.Fprintf(&b, "  %s\n", ui.Error(fmt.Sprintf("%-13s %d findings (%d hard)", e.Name, e.Findings, e.Hard)))
			case e.Findings > 0:
				fmt.Fprintf(&b, "  %s\n", ui.Warning(fmt.Sprintf("%-13s %d advisory findings", e.Name, e.Findings)))
			default:
				fmt.Fprintf(&b, "  %s\n", ui.Success(fmt.Sprintf("%-13s clean", e.Name)))
			}
		}
		if auditAllFull && len(all) > 0 {
			fmt.Fprintf(&b, "\n%s", renderFindings(all))
		}
		text := b.String()

		if auditOutput != "" {
			if err := os.WriteFile(auditOutput, []byte(stripANSI(text)), 0o644); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			fmt.Printf("Report written to %s\n", ui.FilePath(auditOutput))
		} else {
			fmt.Print(text)
		}

		if summary.Failed {
			return handleErrorMsg(ErrAuditFailed, "one or more audits failed", "")
		}
		return nil
	},
}

var auditDuplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Find duplicate and confusable plant names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("duplicates", audit.Duplicates(src), auditOutput)
	},
}

var auditDescriptionsCmd = &cobra.Command{
	Use:   "descriptions",
	Short: "Find placeholder, truncated, and copied descriptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("descriptions", audit.Descriptions(src), "")
	},
}

var auditSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Find translation gaps between locales",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("sync", audit.Sync(src, audit.SyncOptions{CheckTypeNames: auditSyncTypeNames}), "")
	},
}

var auditLanguageCmd = &cobra.Command{
	Use:   "language",
	Short: "Find text written in the wrong language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("language", audit.Language(src), "")
	},
}

var auditNamesCmd = &cobra.Command{
	Use:   "names",
	Short: "Find outdated scientific names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("names", audit.Names(src), "")
	},
}

var auditAkaCmd = &cobra.Command{
	Use:   "aka",
	Short: "Check alias (\"also known as\") consistency",
	Long: `Checks the alias block at the start of each description: scientific names
used as aliases, aliases that restate the display name, subspecies aliases,
and aliases claimed by more than one plant.

With --fix, scientific and redundant aliases are rewritten in place from the
record's common examples.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		if auditAkaFix {
			n, err := audit.FixAka(src)
			if err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
			if !isJSONOutput() {
				fmt.Println(ui.Success(fmt.Sprintf("rewrote %s", ui.Count(n, "alias block", "alias blocks"))))
			}
			// Re-read so the report reflects the fixed files.
			if src, err = loadAuditSource(); src == nil {
				return err
			}
		}
		return reportAudit("aka", audit.Aka(src), "")
	},
}

var auditToxicityCmd = &cobra.Command{
	Use:   "toxicity",
	Short: "Check care tips against toxicity classification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := loadAuditSource()
		if src == nil {
			return err
		}
		return reportAudit("toxicity", audit.ToxicityAlignment(src), "")
	},
}

func init() {
	auditAllCmd.Flags().BoolVar(&auditAllFull, "full", false, "List every finding, not just the summary")
	auditAllCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Write the report to a file")
	auditDuplicatesCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Write the report to a file")
	auditSyncCmd.Flags().BoolVar(&auditSyncTypeNames, "check-typenames", false, "Also flag display names identical to the English one")
	auditAkaCmd.Flags().BoolVar(&auditAkaFix, "fix", false, "Rewrite flagged alias blocks in place")

	auditCmd.AddCommand(auditAllCmd)
	auditCmd.AddCommand(auditDuplicatesCmd)
	auditCmd.AddCommand(auditDescriptionsCmd)
	auditCmd.AddCommand(auditSyncCmd)
	auditCmd.AddCommand(auditLanguageCmd)
	auditCmd.AddCommand(auditNamesCmd)
	auditCmd.AddCommand(auditAkaCmd)
	auditCmd.AddCommand(auditToxicityCmd)
	rootCmd.AddCommand(auditCmd)
}
