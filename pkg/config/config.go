package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultDocument = "src/config.json"
	DefaultLogosDir = "src/assets/logos"
	DefaultPrefix   = "assets/logos/"
	EnvPrefix       = "LOGOLINK"
	FileName        = "logolink"
)

// Config holds the settings for a run. Values come from flags, LOGOLINK_*
// environment variables and an optional logolink.{yaml,toml,json} file, in
// that order of precedence.
type Config struct {
	Document string `mapstructure:"file"`
	LogosDir string `mapstructure:"logos_dir"`
	Prefix   string `mapstructure:"prefix"`
	Ledger   string `mapstructure:"ledger"`
	DryRun   bool   `mapstructure:"dry_run"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Document: DefaultDocument,
		LogosDir: DefaultLogosDir,
		Prefix:   DefaultPrefix,
	}
}

// RegisterFlags adds the configuration flags to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("file", "f", DefaultDocument, "JSON document to update")
	flags.StringP("logos-dir", "d", DefaultLogosDir, "Directory holding downloaded logos")
	flags.String("prefix", DefaultPrefix, "Path prefix written into logoUrl for local logos")
	flags.String("ledger", "", "DuckDB file recording run reports (disabled when empty)")
	flags.Bool("dry-run", false, "Compute changes without writing the document")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
}

// Load resolves the configuration. configPaths are searched for a logolink
// config file; a missing file is not an error.
func Load(v *viper.Viper, flags *pflag.FlagSet, configPaths ...string) (*Config, error) {
	def := Default()
	v.SetDefault("file", def.Document)
	v.SetDefault("logos_dir", def.LogosDir)
	v.SetDefault("prefix", def.Prefix)
	v.SetDefault("ledger", def.Ledger)
	v.SetDefault("dry_run", false)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"file":      "file",
			"logos_dir": "logos-dir",
			"prefix":    "prefix",
			"ledger":    "ledger",
			"dry_run":   "dry-run",
			"verbose":   "verbose",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if len(configPaths) > 0 {
		v.SetConfigName(FileName)
		for _, p := range configPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Prefix = NormalizePrefix(cfg.Prefix)
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Document) == "" {
		return errors.New("document path must not be empty")
	}
	if strings.TrimSpace(c.LogosDir) == "" {
		return errors.New("logos directory must not be empty")
	}
	return nil
}

// NormalizePrefix makes sure a non-empty prefix ends with a slash.
func NormalizePrefix(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}
