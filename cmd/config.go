package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/KaramelBytes/survey-snapshot/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set survey-snapshot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		b, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to survey.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := cfgpkg.Save(cfgpkg.Defaults(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote default config to %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := setKey(c, args[0], args[1]); err != nil {
			return err
		}
		// Load made root_dir absolute; store it as given or as the default.
		saved := *c
		if args[0] != "root_dir" {
			saved.RootDir = "."
		}
		path := configPath()
		if err := cfgpkg.Save(&saved, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved config to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
}

// configPath is --config when given, else survey.yaml in the project root.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	root := rootDir
	if root == "" && cfg != nil {
		root = cfg.RootDir
	}
	return filepath.Join(root, cfgpkg.DefaultFileName)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	intVal := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	boolVal := func() (bool, error) {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		return b, nil
	}
	var err error
	switch key {
	case "root_dir":
		c.RootDir = val
	case "input_xlsx":
		c.InputXLSX = val
	case "sheet_name":
		c.SheetName = val
	case "clean_csv":
		c.CleanCSV = val
	case "summary_md":
		c.SummaryMD = val
	case "figures_dir":
		c.FiguresDir = val
	case "stats_max_columns":
		c.StatsMaxColumns, err = intVal()
	case "sentiment_enabled":
		c.SentimentEnabled, err = boolVal()
	case "charts_enabled":
		c.ChartsEnabled, err = boolVal()
	case "chart_dpi":
		c.ChartDPI, err = intVal()
	case "chart_max_numeric":
		c.ChartMaxNumeric, err = intVal()
	case "chart_max_categorical":
		c.ChartMaxCategorical, err = intVal()
	case "chart_max_cardinality":
		c.ChartMaxCardinality, err = intVal()
	case "html_enabled":
		c.HTMLEnabled, err = boolVal()
	case "log_level":
		switch val {
		case "debug", "info", "warn", "error":
			c.LogLevel = val
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return err
}
