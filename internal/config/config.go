// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves run settings from flags, environment variables,
// and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/pkg/types"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. OFFICE2PDF_LOG_FILE.
	EnvPrefix = "OFFICE2PDF"

	configName = "office2pdf"
)

// Keys shared by flags, environment variables, and the config file.
const (
	KeyOutput     = "output"
	KeyLogFile    = "log-file"
	KeyBackend    = "backend"
	KeySoffice    = "soffice"
	KeyTimeout    = "timeout"
	KeyNoProgress = "no-progress"
	KeyReport     = "report"
	KeyVerbose    = "verbose"
)

// Init prepares v: defaults, environment binding, and the config file
// search path. cfgFile, when set, replaces the search path. A missing
// config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: reading config file: %w", types.ErrConfiguration, err)
	}
	return nil
}

// setDefaults establishes default values for configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyLogFile, types.DefaultLogFile)
	v.SetDefault(KeyBackend, string(types.BackendAuto))
	v.SetDefault(KeySoffice, "")
	v.SetDefault(KeyTimeout, types.DefaultTimeout)
	v.SetDefault(KeyNoProgress, false)
	v.SetDefault(KeyReport, "")
	v.SetDefault(KeyVerbose, false)
}

// BindFlags binds every known key that fs defines to v, so an explicitly
// set flag wins over environment and file values.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyOutput, KeyLogFile, KeyBackend, KeySoffice, KeyTimeout, KeyNoProgress, KeyReport, KeyVerbose} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load builds a validated run configuration for inputDir from v.
func Load(v *viper.Viper, inputDir string) (types.ConversionConfig, error) {
	cfg := types.ConversionConfig{
		InputDir:     inputDir,
		OutputDir:    v.GetString(KeyOutput),
		LogFile:      v.GetString(KeyLogFile),
		Backend:      Backend(v),
		SofficePath:  v.GetString(KeySoffice),
		Timeout:      v.GetDuration(KeyTimeout),
		ShowProgress: !v.GetBool(KeyNoProgress),
		ReportPath:   v.GetString(KeyReport),
	}
	if err := Validate(cfg); err != nil {
		return types.ConversionConfig{}, err
	}
	return cfg, nil
}

// Backend returns the configured backend name, case-folded.
func Backend(v *viper.Viper) types.BackendName {
	return types.BackendName(strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))))
}

// Validate ensures configuration values are usable.
func Validate(cfg types.ConversionConfig) error {
	if strings.TrimSpace(cfg.InputDir) == "" {
		return fmt.Errorf("%w: input directory is required", types.ErrConfiguration)
	}
	if cfg.LogFile == "" {
		return fmt.Errorf("%w: log file path cannot be empty", types.ErrConfiguration)
	}
	switch cfg.Backend {
	case types.BackendAuto, types.BackendOLE, types.BackendSoffice:
	default:
		return fmt.Errorf("%w: unknown backend %q (use auto, ole, or soffice)", types.ErrConfiguration, cfg.Backend)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", types.ErrConfiguration)
	}
	return nil
}
