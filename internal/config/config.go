// Package config provides configuration loading and management.
package config

import "strings"

// ToolsConfig names the external executables relkit drives.
type ToolsConfig struct {
	// Python is the interpreter used for pip installs and sdist/wheel builds.
	// Env: RELKIT_TOOLS_PYTHON, Default: python3
	Python string `mapstructure:"python" yaml:"python" json:"python,omitempty"`

	// RCC is the Qt resource compiler.
	// Env: RELKIT_TOOLS_RCC, Default: pyrcc5
	RCC string `mapstructure:"rcc" yaml:"rcc" json:"rcc,omitempty"`

	// Twine is the package index upload tool.
	// Env: RELKIT_TOOLS_TWINE, Default: twine
	Twine string `mapstructure:"twine" yaml:"twine" json:"twine,omitempty"`
}

// CommandsConfig holds the command lines run for each lifecycle action.
// The line is split into arguments first; {python}, {rcc} and {twine} are
// then replaced with the resolved tool, so tool paths are never re-split.
type CommandsConfig struct {
	Install string `mapstructure:"install" yaml:"install" json:"install,omitempty"`
	Develop string `mapstructure:"develop" yaml:"develop" json:"develop,omitempty"`
	Build   string `mapstructure:"build" yaml:"build" json:"build,omitempty"`
	Upload  string `mapstructure:"upload" yaml:"upload" json:"upload,omitempty"`
}

// ReleaseConfig contains release workflow settings.
type ReleaseConfig struct {
	// Remote is the git remote tags are pushed to when pushing is enabled.
	Remote string `mapstructure:"remote" yaml:"remote" json:"remote,omitempty"`

	// PushTags pushes the release tag after creating it. Default: false.
	PushTags bool `mapstructure:"pushTags" yaml:"pushTags" json:"pushTags,omitempty"`

	// TagPrefix is prepended to the version to form the tag name. Default: "v".
	TagPrefix string `mapstructure:"tagPrefix" yaml:"tagPrefix" json:"tagPrefix,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the relkit CLI configuration, loaded from
// ~/.relkit/config.yaml.
type Config struct {
	Tools    ToolsConfig    `mapstructure:"tools" yaml:"tools" json:"tools"`
	Commands CommandsConfig `mapstructure:"commands" yaml:"commands" json:"commands"`
	Release  ReleaseConfig  `mapstructure:"release" yaml:"release" json:"release"`
	Log      LogConfig      `mapstructure:"log" yaml:"log" json:"log"`
}

// Built-in defaults.
const (
	DefaultPython    = "python3"
	DefaultRCC       = "pyrcc5"
	DefaultTwine     = "twine"
	DefaultRemote    = "origin"
	DefaultTagPrefix = "v"

	DefaultInstallCommand = "{python} -m pip install ."
	DefaultDevelopCommand = "{python} -m pip install -e ."
	DefaultBuildCommand   = "{python} setup.py sdist bdist_wheel --universal"
	DefaultUploadCommand  = "{twine} upload"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `relkit config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Tools: ToolsConfig{
			Python: DefaultPython,
			RCC:    DefaultRCC,
			Twine:  DefaultTwine,
		},
		Commands: CommandsConfig{
			Install: DefaultInstallCommand,
			Develop: DefaultDevelopCommand,
			Build:   DefaultBuildCommand,
			Upload:  DefaultUploadCommand,
		},
		Release: ReleaseConfig{
			Remote:    DefaultRemote,
			TagPrefix: DefaultTagPrefix,
		},
	}
}

// WithDefaults returns a copy of c with every empty field set to its default.
func (c *Config) WithDefaults() *Config {
	out := DefaultConfig()
	if c == nil {
		return out
	}

	setIfEmpty := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	setIfEmpty(&out.Tools.Python, c.Tools.Python)
	setIfEmpty(&out.Tools.RCC, c.Tools.RCC)
	setIfEmpty(&out.Tools.Twine, c.Tools.Twine)
	setIfEmpty(&out.Commands.Install, c.Commands.Install)
	setIfEmpty(&out.Commands.Develop, c.Commands.Develop)
	setIfEmpty(&out.Commands.Build, c.Commands.Build)
	setIfEmpty(&out.Commands.Upload, c.Commands.Upload)
	setIfEmpty(&out.Release.Remote, c.Release.Remote)
	setIfEmpty(&out.Release.TagPrefix, c.Release.TagPrefix)
	out.Release.PushTags = c.Release.PushTags
	out.Log.Timestamps = c.Log.Timestamps

	return out
}

// Placeholders returns the values substituted for {python}, {rcc} and
// {twine} in configured command lines.
func (t ToolsConfig) Placeholders() map[string]string {
	return map[string]string{
		"python": t.Python,
		"rcc":    t.RCC,
		"twine":  t.Twine,
	}
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with defaults applied and tool
	// overrides (flag > env > config) resolved.
	Config *Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ProjectDir is the resolved --project directory.
	ProjectDir string

	Flags GlobalFlags
}

// GlobalFlags holds the raw persistent flag values.
type GlobalFlags struct {
	Config     string
	Project    string
	Verbose    bool
	Timestamps bool
}
