package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/gastos/pkg/pdftext"
)

const envPrefix = "GASTOS"

type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	Engine    string `mapstructure:"engine"`
	Top       int    `mapstructure:"top"`
	DumpRaw   bool   `mapstructure:"dump_raw"`
	Chart     bool   `mapstructure:"chart"`
	LogLevel  string `mapstructure:"log_level"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"output":    "output_dir",
	"engine":    "engine",
	"top":       "top",
	"log-level": "log_level",
}

// New creates a configuration with defaults and the given output directory.
func New(outputDir string) *Config {
	return &Config{
		OutputDir: outputDir,
		Engine:    string(pdftext.EngineMuPDF),
		Top:       10,
		DumpRaw:   true,
		Chart:     true,
		LogLevel:  "info",
	}
}

func (c *Config) GetOutputPath() string {
	return c.OutputDir
}

// PDFEngine returns the configured text extraction engine.
func (c *Config) PDFEngine() (pdftext.Engine, error) {
	return pdftext.ParseEngine(c.Engine)
}

// Build loads configuration from defaults, an optional YAML file (cfgFile or
// ./gastos.yaml), a .env file, GASTOS_* environment variables and flags, in
// increasing order of precedence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load() // .env is optional

	defaults := New("")
	v := viper.New()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("engine", defaults.Engine)
	v.SetDefault("top", defaults.Top)
	v.SetDefault("dump_raw", defaults.DumpRaw)
	v.SetDefault("chart", defaults.Chart)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("gastos")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if flags != nil {
		if noRaw, err := flags.GetBool("no-raw"); err == nil && noRaw {
			cfg.DumpRaw = false
		}
		if noChart, err := flags.GetBool("no-chart"); err == nil && noChart {
			cfg.Chart = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.PDFEngine(); err != nil {
		return err
	}
	if c.Top <= 0 {
		return fmt.Errorf("top must be positive, got %d", c.Top)
	}
	return nil
}
