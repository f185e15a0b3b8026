// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/plantfolio/plantkit/internal/config"
	"github.com/plantfolio/plantkit/internal/schema"
	"github.com/plantfolio/plantkit/internal/store"
	"github.com/plantfolio/plantkit/internal/ui"
)

var (
	// Global flags
	datasetName     string // Named dataset from config
	datasetPathFlag string // Explicit path
	configPath      string

	// Resolved values
	resolvedDatasetPath string
	cfg                 *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "plantkit",
	Short: "Plantkit - plant-care dataset toolkit",
	Long: `Plantkit maintains the plant-care content dataset: a shared metadata store
plus one language store per locale, merged into the distributable JSON
resources that apps consume.

It builds dist files, validates records against the schema, audits content
quality across locales, and runs the pre-release pipeline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip dataset resolution for commands that don't need one
		switch cmd.Name() {
		case "version", "docs", "config", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil {
			switch cmd.Parent().Name() {
			case "completion", "config", "docs":
				return nil
			}
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve dataset path: explicit path > named dataset > env > default > cwd
		switch {
		case datasetPathFlag != "":
			resolvedDatasetPath = datasetPathFlag
		case datasetName != "":
			resolvedDatasetPath, err = cfg.GetDatasetPath(datasetName)
			if err != nil {
				return fmt.Errorf("dataset '%s' not found\n\nAdd it to [datasets] in %s", datasetName, config.DefaultPath())
			}
		case strings.TrimSpace(os.Getenv("PLANTKIT_DATASET")) != "":
			resolvedDatasetPath = strings.TrimSpace(os.Getenv("PLANTKIT_DATASET"))
		default:
			resolvedDatasetPath, err = cfg.GetDefaultDatasetPath()
			if err != nil {
				// Fall back to the working directory when it holds a dataset.
				wd, wdErr := os.Getwd()
				if wdErr == nil && datasetAt(wd) {
					resolvedDatasetPath = wd
					break
				}
				return fmt.Errorf(`no dataset specified

Either:
  1. Use --dataset <name> (from config)
  2. Use --dataset-path /path/to/dataset
  3. Set PLANTKIT_DATASET in the environment
  4. Set default_dataset in %s
  5. Run from a directory containing source/%s`, config.DefaultPath(), schema.MetadataFile)
			}
		}

		if !datasetAt(resolvedDatasetPath) {
			return fmt.Errorf("no dataset at %s (missing %s)", resolvedDatasetPath, store.Dataset{Root: resolvedDatasetPath}.MetadataPath())
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Accept snake_case spellings of multi-word flags.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	rootCmd.PersistentFlags().StringVarP(&datasetName, "dataset", "d", "", "Named dataset from config")
	rootCmd.PersistentFlags().StringVar(&datasetPathFlag, "dataset-path", "", "Explicit path to dataset directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getDataset returns the resolved dataset.
func getDataset() store.Dataset {
	return store.Dataset{Root: resolvedDatasetPath}
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// datasetAt reports whether dir contains the metadata store.
func datasetAt(dir string) bool {
	_, err := os.Stat(store.Dataset{Root: dir}.MetadataPath())
	return err == nil
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}
