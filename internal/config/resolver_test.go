package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath_FlagPrecedence(t *testing.T) {
	t.Setenv(EnvConfig, "/env/path/config.yaml")

	result, err := ResolveConfigPath("/flag/path/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "/flag/path/config.yaml", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "/env/path/config.yaml", result.Shadowed[SourceEnv])
	assert.NotEmpty(t, result.Shadowed[SourceDefault])
}

func TestResolveConfigPath_EnvPrecedence(t *testing.T) {
	t.Setenv(EnvConfig, "/env/path/config.yaml")

	result, err := ResolveConfigPath("")
	require.NoError(t, err)

	assert.Equal(t, "/env/path/config.yaml", result.Value)
	assert.Equal(t, SourceEnv, result.Source)
	assert.NotContains(t, result.Shadowed, SourceFlag)
}

func TestResolveConfigPath_Default(t *testing.T) {
	t.Setenv(EnvConfig, "")

	result, err := ResolveConfigPath("")
	require.NoError(t, err)

	assert.Contains(t, result.Value, ".relkit")
	assert.Equal(t, SourceDefault, result.Source)
	assert.Empty(t, result.Shadowed)
}

func TestResolveProjectDir(t *testing.T) {
	t.Setenv(EnvProject, "")
	assert.Equal(t, ".", ResolveProjectDir("").Value)

	t.Setenv(EnvProject, "/src/labelImg")
	r := ResolveProjectDir("")
	assert.Equal(t, "/src/labelImg", r.Value)
	assert.Equal(t, SourceEnv, r.Source)

	r = ResolveProjectDir("../other")
	assert.Equal(t, "../other", r.Value)
	assert.Equal(t, SourceFlag, r.Source)
}

func TestResolveTools(t *testing.T) {
	t.Run("flag overrides all", func(t *testing.T) {
		t.Setenv(EnvRCC, "/env/pyrcc5")

		r := ResolveTools(ToolFlags{RCC: "/flag/pyrcc5"}, &Config{Tools: ToolsConfig{RCC: "/config/pyrcc5"}})

		assert.Equal(t, "/flag/pyrcc5", r.RCC.Value)
		assert.Equal(t, SourceFlag, r.RCC.Source)
		assert.Equal(t, "/env/pyrcc5", r.RCC.Shadowed[SourceEnv])
		assert.Equal(t, "/config/pyrcc5", r.RCC.Shadowed[SourceConfig])
	})

	t.Run("env overrides config", func(t *testing.T) {
		t.Setenv(EnvTwine, "/env/twine")

		r := ResolveTools(ToolFlags{}, &Config{Tools: ToolsConfig{Twine: "/config/twine"}})

		assert.Equal(t, "/env/twine", r.Twine.Value)
		assert.Equal(t, SourceEnv, r.Twine.Source)
	})

	t.Run("config overrides default", func(t *testing.T) {
		t.Setenv(EnvPython, "")

		r := ResolveTools(ToolFlags{}, &Config{Tools: ToolsConfig{Python: "python3.12"}})

		assert.Equal(t, "python3.12", r.Python.Value)
		assert.Equal(t, SourceConfig, r.Python.Source)
		assert.Equal(t, DefaultPython, r.Python.Shadowed[SourceDefault])
	})

	t.Run("defaults with nil config", func(t *testing.T) {
		t.Setenv(EnvPython, "")
		t.Setenv(EnvRCC, "")
		t.Setenv(EnvTwine, "")

		r := ResolveTools(ToolFlags{}, nil)

		assert.Equal(t, ToolsConfig{Python: "python3", RCC: "pyrcc5", Twine: "twine"}, r.Values())
		assert.Equal(t, SourceDefault, r.RCC.Source)
		assert.Len(t, r.All(), 3)
	})
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "flag", string(SourceFlag))
	assert.Equal(t, "env", string(SourceEnv))
	assert.Equal(t, "config", string(SourceConfig))
	assert.Equal(t, "default", string(SourceDefault))
}
