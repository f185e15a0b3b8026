package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/plantfolio/plantkit/internal/audit"
	"github.com/plantfolio/plantkit/internal/ui"
)

// findingView is the JSON shape of one audit finding.
type findingView struct {
	Audit    string `json:"audit"`
	Kind     string `json:"kind"`
	Locale   string `json:"locale,omitempty"`
	PlantID  string `json:"plantId,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// auditResult is the JSON payload of one audit run.
type auditResult struct {
	Findings []findingView `json:"findings"`
	Failed   bool          `json:"failed"`
}

func newAuditResult(findings []audit.Finding) auditResult {
	res := auditResult{Findings: []findingView{}, Failed: audit.Failed(findings)}
	for _, f := range findings {
		res.Findings = append(res.Findings, findingView{
			Audit:    f.Audit,
			Kind:     f.Kind,
			Locale:   f.Locale,
			PlantID:  f.PlantID,
			Field:    f.Field,
			Message:  f.Message,
			Severity: f.Severity.String(),
		})
	}
	return res
}

// renderFindings formats findings for terminal output, grouped by locale.
func renderFindings(findings []audit.Finding) string {
	var b strings.Builder
	byLocale := make(map[string][]audit.Finding)
	var order []string
	for _, f := range findings {
		loc := f.Locale
		if loc == "" {
			loc = "all"
		}
		if _, seen := byLocale[loc]; !seen {
			order = append(order, loc)
		}
		byLocale[loc] = append(byLocale[loc], f)
	}
	sort.Strings(order)

	for _, loc := range order {
		fmt.Fprintf(&b, "%s\n", ui.Header(fmt.Sprintf("[%s]", loc)))
		for _, f := range byLocale[loc] {
			line := f.Message
			if f.PlantID != "" {
				line = fmt.Sprintf("%s: %s", ui.PlantID(f.PlantID), f.Message)
			}
			if f.Severity == audit.Hard {
				fmt.Fprintf(&b, "  %s\n", ui.Error(line))
			} else {
				fmt.Fprintf(&b, "  %s\n", ui.Warning(line))
			}
		}
	}
	return b.String()
}

// reportAudit prints or emits one audit's findings and returns a non-nil
// error when any finding is hard.
func reportAudit(name string, findings []audit.Finding, outputPath string) error {
	if isJSONOutput() {
		res := newAuditResult(findings)
		if res.Failed {
			outputError(ErrAuditFailed, fmt.Sprintf("%s audit failed", name), res, "")
			return nil
		}
		outputSuccess(res, &Meta{Count: len(findings)})
		return nil
	}

	var text string
	if len(findings) == 0 {
		text = ui.Success(fmt.Sprintf("%s: no findings", name)) + "\n"
	} else {
		hard := 0
		for _, f := range findings {
			if f.Severity == audit.Hard {
				hard++
			}
		}
		text = renderFindings(findings)
		text += fmt.Sprintf("\n%s, %d hard\n", ui.Count(len(findings), "finding", "findings"), hard)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(stripANSI(text)), 0o644); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		fmt.Printf("Report written to %s\n", ui.FilePath(outputPath))
	} else {
		fmt.Print(text)
	}

	if audit.Failed(findings) {
		return handleErrorMsg(ErrAuditFailed, fmt.Sprintf("%s audit failed", name), "")
	}
	return nil
}

// stripANSI removes terminal escape sequences for file output.
func stripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// loadAuditSource loads the source stores for the audit commands. On
// failure the error has already been reported in JSON mode, so callers must
// stop whenever src is nil, whatever the error value.
func loadAuditSource() (*audit.Source, error) {
	src, err := audit.Load(getDataset())
	if err != nil {
		return nil, handleError(ErrStoreInvalid, err, "Check that the source files are valid JSON")
	}
	return src, nil
}
