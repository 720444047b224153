package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the project root.
const DefaultFileName = "survey.yaml"

// Global configuration structure. Paths other than RootDir are resolved
// against RootDir unless absolute.
type Global struct {
	RootDir   string `mapstructure:"root_dir" yaml:"root_dir"`
	InputXLSX string `mapstructure:"input_xlsx" yaml:"input_xlsx"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
	CleanCSV  string `mapstructure:"clean_csv" yaml:"clean_csv"`
	SummaryMD string `mapstructure:"summary_md" yaml:"summary_md"`
	// FiguresDir holds the chart images.
	FiguresDir string `mapstructure:"figures_dir" yaml:"figures_dir"`

	StatsMaxColumns  int  `mapstructure:"stats_max_columns" yaml:"stats_max_columns"`
	SentimentEnabled bool `mapstructure:"sentiment_enabled" yaml:"sentiment_enabled"`

	// Charts
	ChartsEnabled       bool `mapstructure:"charts_enabled" yaml:"charts_enabled"`
	ChartDPI            int  `mapstructure:"chart_dpi" yaml:"chart_dpi"`
	ChartMaxNumeric     int  `mapstructure:"chart_max_numeric" yaml:"chart_max_numeric"`
	ChartMaxCategorical int  `mapstructure:"chart_max_categorical" yaml:"chart_max_categorical"`
	ChartMaxCardinality int  `mapstructure:"chart_max_cardinality" yaml:"chart_max_cardinality"`

	HTMLEnabled bool   `mapstructure:"html_enabled" yaml:"html_enabled"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root_dir", ".")
	v.SetDefault("input_xlsx", "survey_responses.xlsx")
	v.SetDefault("sheet_name", "")
	v.SetDefault("clean_csv", filepath.Join("data", "cleaned_responses.csv"))
	v.SetDefault("summary_md", filepath.Join("artifacts", "summary.md"))
	v.SetDefault("figures_dir", filepath.Join("artifacts", "figures"))
	v.SetDefault("stats_max_columns", 5)
	v.SetDefault("sentiment_enabled", true)
	v.SetDefault("charts_enabled", true)
	v.SetDefault("chart_dpi", 150)
	v.SetDefault("chart_max_numeric", 4)
	v.SetDefault("chart_max_categorical", 4)
	v.SetDefault("chart_max_cardinality", 10)
	v.SetDefault("html_enabled", false)
	v.SetDefault("log_level", "info")
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory is read first and only fills variables that are not already set.
// When cfgFile is empty, survey.yaml is looked up in rootHint (or the working
// directory).
func Load(cfgFile, rootHint string) (*Global, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SURVEY")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir := rootHint
		if dir == "" {
			dir = "."
		}
		v.AddConfigPath(dir)
		v.SetConfigName("survey")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if rootHint != "" {
		c.RootDir = rootHint
	}
	root, err := filepath.Abs(c.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root dir: %w", err)
	}
	c.RootDir = root
	return &c, nil
}

// Save writes the given configuration as YAML to path, creating the
// directory if necessary.
func Save(c *Global, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
