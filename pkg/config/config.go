// Package config loads filemerge settings from flags, FILEMERGE_* environment
// variables and an optional .filemerge.yaml file, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/drengskapur/filemerge/pkg/merger"
)

// Viper keys.
const (
	KeyPrependMarker = "prepend_marker"
	KeyAppendMarker  = "append_marker"
	KeyLogLevel      = "log_level"
	KeyDebug         = "debug"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "FILEMERGE"

// Config holds the run-wide settings.
type Config struct {
	PrependMarker string `mapstructure:"prepend_marker"`
	AppendMarker  string `mapstructure:"append_marker"`
	LogLevel      string `mapstructure:"log_level"`
	Debug         bool   `mapstructure:"debug"`
}

// New returns a viper instance with defaults and environment binding applied.
// When cfgFile is empty, .filemerge.yaml in the working directory is used if present.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(KeyPrependMarker, merger.DefaultPrependMarker)
	v.SetDefault(KeyAppendMarker, merger.DefaultAppendMarker)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDebug, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.AddConfigPath(".")
	v.SetConfigName(".filemerge")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}
	return v, nil
}

// BindFlags binds the persistent CLI flags to their viper keys.
// Flag names use dashes; keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyPrependMarker, KeyAppendMarker, KeyLogLevel, KeyDebug} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("could not bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode configuration: %w", err)
	}
	if _, err := cfg.Markers(); err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", cfg.LogLevel)
	}
	return &cfg, nil
}

// Markers returns the validated marker pair.
func (c *Config) Markers() (merger.Markers, error) {
	return merger.NewMarkers(c.PrependMarker, c.AppendMarker)
}
