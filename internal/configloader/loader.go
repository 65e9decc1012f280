// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging
// through viper, environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/viper"

	"github.com/yaklabco/mdmir/pkg/config"
)

// configType is the only configuration file syntax accepted.
const configType = "yaml"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips MDMIR_* environment variables.
	IgnoreEnv bool

	// Overrides maps dotted keys (e.g., "wire.format") to values taken from
	// CLI flags. These take highest precedence.
	Overrides map[string]any
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (MDMIR_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdmir.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdmir/config.yaml)
//  6. System config (/etc/mdmir/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	v := viper.New()
	if err := setDefaults(v); err != nil {
		return nil, err
	}
	v.SetConfigType(configType)

	layers := []struct {
		name    string
		path    string
		skipped bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skipped || layer.path == "" {
			continue
		}

		keys, err := mergeFile(v, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, unknownKeyWarnings(layer.path, keys)...)
	}

	if !opts.IgnoreEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(envKeyReplacer)
		v.AutomaticEnv()
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	// Every key has a default, so decoding starts from the zero value.
	// Decoding into pre-filled slices would keep stale trailing elements.
	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		errs := make([]error, len(validation.Errors))
		for i := range validation.Errors {
			errs[i] = &validation.Errors[i]
		}
		return nil, errors.Join(errs...)
	}

	result.Config = cfg
	return result, nil
}

// setDefaults registers every key so environment variables resolve and
// partially specified sections keep their remaining defaults.
func setDefaults(v *viper.Viper) error {
	defaults, err := config.Defaults()
	if err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return nil
}

// mergeFile merges one YAML file into v and returns the keys it set.
func mergeFile(v *viper.Viper, path string) ([]string, error) {
	file := viper.New()
	file.SetConfigType(configType)
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := v.MergeConfigMap(file.AllSettings()); err != nil {
		return nil, fmt.Errorf("merge %s: %w", path, err)
	}

	return file.AllKeys(), nil
}

// unknownKeyWarnings reports keys a config file sets that mdmir does not read.
func unknownKeyWarnings(path string, keys []string) []string {
	known := make(map[string]bool)
	for _, setting := range config.Settings() {
		known[setting.Key()] = true
	}

	slices.Sort(keys)

	var warnings []string
	for _, key := range keys {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("%s: unknown key %q; it will be ignored", path, key))
		}
	}
	return warnings
}

// WriteTemplate writes a configuration template to path, refusing to
// overwrite an existing file unless force is set.
func WriteTemplate(path string, opts config.TemplateOptions, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644
