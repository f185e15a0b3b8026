// Package release runs the pre-release pipeline: optional canonical sort,
// dist build, schema and structure validation, and every active content
// audit. One failing step does not stop the pipeline; the report carries the
// outcome of each step so a maintainer can fix everything in one pass.
package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/plantfolio/plantkit/internal/audit"
	"github.com/plantfolio/plantkit/internal/check"
	"github.com/plantfolio/plantkit/internal/merge"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
)

// maxProblems caps the per-step problem list; the full detail is available
// from the individual commands.
const maxProblems = 20

// Options control the pipeline.
type Options struct {
	// Sort rewrites the source files into canonical order before building.
	Sort bool
	// Header is passed through to the dist build.
	Header bool
}

// Step is the outcome of one pipeline stage.
type Step struct {
	Name     string   `json:"name"`
	OK       bool     `json:"ok"`
	Detail   string   `json:"detail,omitempty"`
	Problems []string `json:"problems,omitempty"`
}

// Report is the outcome of a full pipeline run.
type Report struct {
	OK    bool   `json:"ok"`
	Steps []Step `json:"steps"`
}

var audits = []struct {
	id   string
	name string
	run  func(*audit.Source) []audit.Finding
}{
	{schema.AuditNames, "audit:names", audit.Names},
	{schema.AuditDuplicates, "audit:duplicates", audit.Duplicates},
	{schema.AuditDescriptions, "audit:descriptions", audit.Descriptions},
	{schema.AuditSync, "audit:sync", func(s *audit.Source) []audit.Finding { return audit.Sync(s, audit.SyncOptions{}) }},
	{schema.AuditLanguage, "audit:language", audit.Language},
	{schema.AuditAka, "audit:aka", audit.Aka},
	{schema.AuditToxicityAlign, "audit:toxicity", audit.ToxicityAlignment},
}

// Run executes the pipeline against a dataset. Only unreadable inputs abort
// the run; check failures land in the report.
func Run(ds store.Dataset, opts Options) (*Report, error) {
	manifest, err := schema.LoadManifest(ds.ManifestPath())
	if err != nil {
		return nil, err
	}

	report := &Report{OK: true}
	add := func(s Step) {
		if !s.OK {
			report.OK = false
		}
		report.Steps = append(report.Steps, s)
	}

	if opts.Sort {
		res, err := Sort(ds)
		if err != nil {
			return nil, err
		}
		add(Step{Name: "sort", OK: true, Detail: fmt.Sprintf("%d plants in canonical order", res.Plants)})
	}

	buildStep, err := build(ds, opts)
	if err != nil {
		return nil, err
	}
	add(buildStep)

	validateStep, err := validate(ds, manifest)
	if err != nil {
		return nil, err
	}
	add(validateStep)

	src, err := audit.Load(ds)
	if err != nil {
		return nil, err
	}
	for _, a := range audits {
		if !manifest.Active(a.id) {
			continue
		}
		add(auditStep(a.name, a.run(src)))
	}
	return report, nil
}

func build(ds store.Dataset, opts Options) (Step, error) {
	rep, err := merge.Run(ds, merge.Options{Header: opts.Header})
	if err != nil {
		return Step{}, err
	}

	step := Step{
		Name:   "build",
		OK:     rep.Clean(),
		Detail: fmt.Sprintf("%d records across %d locales", rep.Total, len(rep.Results)),
	}
	var problems []string
	for _, res := range rep.Results {
		if res.SourceMissing {
			problems = append(problems, fmt.Sprintf("%s: language file missing", res.Locale.Code))
		}
		for _, id := range res.MissingMetadata {
			problems = append(problems, fmt.Sprintf("%s: %s has no metadata record", res.Locale.Code, id))
		}
		for _, id := range res.MissingLanguage {
			problems = append(problems, fmt.Sprintf("%s: %s has no language entry", res.Locale.Code, id))
		}
	}
	step.Problems = capped(problems)
	return step, nil
}

func validate(ds store.Dataset, manifest *schema.Manifest) (Step, error) {
	meta, err := store.LoadMetadata(ds.MetadataPath())
	if err != nil {
		return Step{}, err
	}

	v := check.NewValidator(manifest)
	issues := v.ValidateMetadata(meta)
	issues = append(issues, v.CheckHeaderCount(meta)...)

	en, err := store.LoadLanguage(ds.LanguagePath(schema.ReferenceLocale()), schema.ReferenceLocale())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Step{}, err
	}
	if en != nil {
		issues = append(issues, v.CrossReference(meta, en)...)
	}

	for _, loc := range schema.Locales {
		path := ds.DistPath(loc)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		issues = append(issues, check.CheckDistStructure(path, loc)...)
	}

	step := Step{
		Name:   "validate",
		OK:     check.Errors(issues) == 0,
		Detail: fmt.Sprintf("%d plants checked", len(meta.Records)),
	}
	problems := make([]string, 0, len(issues))
	for _, i := range issues {
		problems = append(problems, i.String())
	}
	step.Problems = capped(problems)
	return step, nil
}

func auditStep(name string, findings []audit.Finding) Step {
	problems := make([]string, 0, len(findings))
	for _, f := range findings {
		problems = append(problems, f.String())
	}
	return Step{
		Name:     name,
		OK:       !audit.Failed(findings),
		Problems: capped(problems),
	}
}

func capped(problems []string) []string {
	if len(problems) <= maxProblems {
		return problems
	}
	extra := len(problems) - maxProblems
	return append(problems[:maxProblems], fmt.Sprintf("... and %d more", extra))
}
