// Package config loads termsheet settings from defaults, an optional YAML
// file, a .env file, TERMSHEET_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	EnvPrefix = "TERMSHEET"

	DefaultFormat      = FormatXLSX
	DefaultLogLevel    = "info"
	DefaultAddr        = ":8080"
	DefaultMaxUploadMB = 20

	envFile = ".env"
)

// Config holds the settings shared by the CLI and the server.
type Config struct {
	OutputDir      string       `mapstructure:"output_dir"`
	Format         string       `mapstructure:"format"`
	Debug          bool         `mapstructure:"debug"`
	ProcessingDate string       `mapstructure:"processing_date"`
	AppendTo       string       `mapstructure:"append_to"`
	LogLevel       string       `mapstructure:"log_level"`
	MaxUploadMB    int64        `mapstructure:"max_upload_mb"`
	Server         ServerConfig `mapstructure:"server"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Flag names mapped to their configuration keys.
var flagKeys = map[string]string{
	"output-dir":      "output_dir",
	"format":          "format",
	"debug":           "debug",
	"processing-date": "processing_date",
	"append-to":       "append_to",
	"log-level":       "log_level",
	"max-upload-mb":   "max_upload_mb",
	"addr":            "server.addr",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:      DefaultFormat,
		LogLevel:    DefaultLogLevel,
		MaxUploadMB: DefaultMaxUploadMB,
		Server:      ServerConfig{Addr: DefaultAddr},
	}
}

// Build loads the configuration. cfgFile may be empty, in which case
// termsheet.yaml in the working directory is used when present. Only flags
// the user actually set override lower layers.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("termsheet")
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

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("processing_date", cfg.ProcessingDate)
	v.SetDefault("append_to", cfg.AppendTo)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("max_upload_mb", cfg.MaxUploadMB)
	v.SetDefault("server.addr", cfg.Server.Addr)
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that have a fixed domain. The processing date
// is not checked here: a malformed one only skips the processing date fields.
func (c *Config) Validate() error {
	if c.Format != FormatXLSX && c.Format != FormatCSV {
		return fmt.Errorf("format must be %q or %q, got %q", FormatXLSX, FormatCSV, c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("max_upload_mb must be positive")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr cannot be empty")
	}
	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
