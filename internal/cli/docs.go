package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/plantfolio/plantkit/docs"
	"github.com/plantfolio/plantkit/internal/ui"
)

const docsGuideDir = "guide"

// docsTopicView is the JSON shape of one docs topic.
type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled documentation",
	Long: `Browse long-form documentation bundled into the plantkit binary.

Without arguments, lists the available topics. With a topic name, renders
it in the terminal. For command-level usage, use 'plantkit help <command>'.

Examples:
  plantkit docs
  plantkit docs audits
  plantkit docs release`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := docsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			fmt.Println(ui.Header("Documentation topics"))
			for _, t := range topics {
				fmt.Printf("  %s  %s\n", ui.Accent.Render(fmt.Sprintf("%-10s", t.ID)), ui.Muted.Render(t.Title))
			}
			fmt.Printf("\n%s\n", ui.Hint("plantkit docs <topic>"))
			return nil
		}

		topic := strings.ToLower(strings.TrimSuffix(args[0], ".md"))
		content, err := builtindocs.FS.ReadFile(path.Join(docsGuideDir, topic+".md"))
		if err != nil {
			known := make([]string, 0, len(topics))
			for _, t := range topics {
				known = append(known, t.ID)
			}
			return handleErrorMsg(ErrDocsTopicUnknown,
				fmt.Sprintf("unknown topic %q", args[0]),
				fmt.Sprintf("Topics: %s", strings.Join(known, ", ")))
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"topic": topic, "content": string(content)}, nil)
			return nil
		}

		if !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(string(content))
			return nil
		}
		dc := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(string(content), dc.TermWidth)
		if err != nil {
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

// docsTopics lists the bundled guide files with their first-heading titles.
func docsTopics() ([]docsTopicView, error) {
	entries, err := fs.ReadDir(builtindocs.FS, docsGuideDir)
	if err != nil {
		return nil, err
	}
	var topics []docsTopicView
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".md")
		content, err := builtindocs.FS.ReadFile(path.Join(docsGuideDir, e.Name()))
		if err != nil {
			return nil, err
		}
		topics = append(topics, docsTopicView{ID: id, Title: docTitle(string(content), id)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func docTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
