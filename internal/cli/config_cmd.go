package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantfolio/plantkit/internal/config"
	"github.com/plantfolio/plantkit/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the plantkit config",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := configFilePath()
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": p}, nil)
			return nil
		}
		fmt.Println(p)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfigForEdit()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":            configFilePath(),
				"default_dataset": c.DefaultDataset,
				"datasets":        c.Datasets,
				"ui":              map[string]string{"accent": c.UI.Accent},
			}, nil)
			return nil
		}

		fmt.Println(ui.Header("Config"))
		fmt.Printf("%s %s\n", ui.Muted.Render("path:           "), ui.FilePath(configFilePath()))
		fmt.Printf("%s %s\n", ui.Muted.Render("default_dataset:"), c.DefaultDataset)
		if len(c.Datasets) > 0 {
			names := make([]string, 0, len(c.Datasets))
			for name := range c.Datasets {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Printf("%s\n", ui.Muted.Render("datasets:"))
			for _, name := range names {
				fmt.Printf("  %s = %s\n", name, ui.FilePath(c.Datasets[name]))
			}
		}
		if c.UI.Accent != "" {
			fmt.Printf("%s %s\n", ui.Muted.Render("ui.accent:      "), c.UI.Accent)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value",
	Long: `Sets one config value and writes the file back.

Keys:
  default_dataset    path of the dataset used when none is given
  datasets.<name>    path of a named dataset
  ui.accent          accent color (hex or "none")

Examples:
  plantkit config set default_dataset ~/plants
  plantkit config set datasets.work /srv/plants
  plantkit config set ui.accent "#7C3AED"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		c, err := loadConfigForEdit()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		switch {
		case key == "default_dataset":
			c.DefaultDataset = value
		case key == "ui.accent":
			c.UI.Accent = value
		case strings.HasPrefix(key, "datasets."):
			name := strings.TrimPrefix(key, "datasets.")
			if name == "" {
				return handleErrorMsg(ErrInvalidInput, "dataset name missing: use datasets.<name>", "")
			}
			if c.Datasets == nil {
				c.Datasets = make(map[string]string)
			}
			c.Datasets[name] = value
		default:
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("unknown config key %q", key),
				"Keys: default_dataset, datasets.<name>, ui.accent")
		}

		if err := config.SaveTo(configFilePath(), c); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"key": key, "value": value}, nil)
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s = %s", key, value)))
		return nil
	},
}

func configFilePath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadConfigForEdit() (*config.Config, error) {
	path := configFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &config.Config{}, nil
	}
	c, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &config.Config{}
	}
	return c, nil
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
