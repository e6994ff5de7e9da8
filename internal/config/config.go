package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all report settings, layered defaults ← optional config file
// ← STORMREPORT_* environment variables. Command-line flags override
// individual fields after Load.
type Config struct {
	LogLevel  string
	LogFormat string

	// TopN is how many ranked event types each event summary keeps.
	// The state summary is never truncated.
	TopN int

	// OutputDir receives the long-form report files; empty disables file
	// output (terminal rendering still happens).
	OutputDir    string
	OutputFormat string // "csv" or "json"

	// Comma is the input field delimiter.
	Comma string

	// ExcludeStateIDs is a denylist of known-bad state ids dropped from the
	// canonical state table. It filters by id value, never by row position.
	ExcludeStateIDs []int
}

// Load reads configuration, applying defaults where unset. A stormreport.yaml
// in the working directory is honored when present but never required.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("report.top_n", 20)
	v.SetDefault("report.output_dir", "")
	v.SetDefault("report.format", "csv")
	v.SetDefault("input.comma", ",")
	v.SetDefault("states.exclude_ids", []int{})

	v.SetEnvPrefix("STORMREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("stormreport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		LogLevel:        v.GetString("log.level"),
		LogFormat:       v.GetString("log.format"),
		TopN:            v.GetInt("report.top_n"),
		OutputDir:       v.GetString("report.output_dir"),
		OutputFormat:    v.GetString("report.format"),
		Comma:           v.GetString("input.comma"),
		ExcludeStateIDs: v.GetIntSlice("states.exclude_ids"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	switch c.OutputFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("invalid report format %q (want csv or json)", c.OutputFormat)
	}
	if len([]rune(c.Comma)) != 1 {
		return fmt.Errorf("input comma must be a single character, got %q", c.Comma)
	}
	return nil
}

// CommaRune returns the input delimiter as a rune. Validate guarantees
// exactly one.
func (c *Config) CommaRune() rune {
	return []rune(c.Comma)[0]
}
