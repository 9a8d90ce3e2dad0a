package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "python3", cfg.Tools.Python)
	assert.Equal(t, "pyrcc5", cfg.Tools.RCC)
	assert.Equal(t, "twine", cfg.Tools.Twine)
	assert.Equal(t, "{python} setup.py sdist bdist_wheel --universal", cfg.Commands.Build)
	assert.Equal(t, "origin", cfg.Release.Remote)
	assert.Equal(t, "v", cfg.Release.TagPrefix)
	assert.False(t, cfg.Release.PushTags)
}

func TestWithDefaults(t *testing.T) {
	t.Run("nil config yields defaults", func(t *testing.T) {
		var cfg *Config
		assert.Equal(t, DefaultConfig(), cfg.WithDefaults())
	})

	t.Run("set fields are kept", func(t *testing.T) {
		cfg := &Config{
			Tools:   ToolsConfig{RCC: "/opt/qt/bin/pyrcc5"},
			Release: ReleaseConfig{PushTags: true},
		}
		out := cfg.WithDefaults()

		assert.Equal(t, "/opt/qt/bin/pyrcc5", out.Tools.RCC)
		assert.Equal(t, "python3", out.Tools.Python)
		assert.True(t, out.Release.PushTags)
		assert.Equal(t, DefaultUploadCommand, out.Commands.Upload)
	})

	t.Run("whitespace counts as empty", func(t *testing.T) {
		cfg := &Config{Tools: ToolsConfig{Twine: "  "}}
		assert.Equal(t, "twine", cfg.WithDefaults().Tools.Twine)
	})
}

func TestPlaceholders(t *testing.T) {
	tools := ToolsConfig{Python: "/usr/bin/python3.12", Twine: "twine", RCC: "pyrcc5"}

	assert.Equal(t, map[string]string{
		"python": "/usr/bin/python3.12",
		"rcc":    "pyrcc5",
		"twine":  "twine",
	}, tools.Placeholders())
}
