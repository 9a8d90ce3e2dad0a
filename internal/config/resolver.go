package config

import (
	"os"

	"github.com/opmodel/relkit/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue is a single configuration value with its provenance.
type ResolvedValue struct {
	Key    string
	Value  string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// resolveString applies flag > env > config > default precedence.
func resolveString(key, flagValue, envVar, configValue, defaultValue string) ResolvedValue {
	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceConfig, configValue},
		{SourceDefault, defaultValue},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) RELKIT_CONFIG env, (3) ~/.relkit/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolveString("config", flagValue, EnvConfig, "", paths.ConfigFile), nil
}

// ResolveProjectDir resolves the project directory using precedence:
// (1) --project flag, (2) RELKIT_PROJECT env, (3) the working directory.
func ResolveProjectDir(flagValue string) ResolvedValue {
	return resolveString("project", flagValue, EnvProject, "", ".")
}

// ToolFlags carries per-command tool overrides.
type ToolFlags struct {
	Python string
	RCC    string
	Twine  string
}

// ResolvedTools holds each tool with its provenance.
type ResolvedTools struct {
	Python ResolvedValue
	RCC    ResolvedValue
	Twine  ResolvedValue
}

// Values returns the resolved tools as a ToolsConfig.
func (r ResolvedTools) Values() ToolsConfig {
	return ToolsConfig{
		Python: r.Python.Value,
		RCC:    r.RCC.Value,
		Twine:  r.Twine.Value,
	}
}

// All returns the resolved values in a stable order, for logging.
func (r ResolvedTools) All() []ResolvedValue {
	return []ResolvedValue{r.Python, r.RCC, r.Twine}
}

// ResolveTools resolves every external tool using precedence:
// (1) flag, (2) RELKIT_TOOLS_* env, (3) config file, (4) built-in default.
func ResolveTools(flags ToolFlags, cfg *Config) ResolvedTools {
	var file ToolsConfig
	if cfg != nil {
		file = cfg.Tools
	}
	return ResolvedTools{
		Python: resolveString("tools.python", flags.Python, EnvPython, file.Python, DefaultPython),
		RCC:    resolveString("tools.rcc", flags.RCC, EnvRCC, file.RCC, DefaultRCC),
		Twine:  resolveString("tools.twine", flags.Twine, EnvTwine, file.Twine, DefaultTwine),
	}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
