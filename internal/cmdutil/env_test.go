package cmdutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/relkit/internal/config"
	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/proc"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"relkit.cue": `
name:    "labelImg"
author:  "TzuTa Lin"
license: "MIT license"
url:     "https://github.com/tzutalin/labelImg"
`,
		"libs/__init__.py": "__version__ = '1.8.6'\n",
		"README.rst":       "readme",
		"HISTORY.rst":      "history",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func globalConfig(root string) *config.GlobalConfig {
	return &config.GlobalConfig{Config: config.DefaultConfig(), ProjectDir: root}
}

func TestNewSession_Install(t *testing.T) {
	root := writeProject(t)
	t.Setenv(config.EnvPython, "")
	t.Setenv(config.EnvRCC, "")
	t.Setenv(config.EnvTwine, "")

	s, err := NewSession(globalConfig(root), &ToolFlags{RCC: "pyside6-rcc", Timeout: time.Minute}, nil)
	require.NoError(t, err)

	assert.Equal(t, "1.8.6", s.Metadata.Version)
	assert.Equal(t, "pyside6-rcc", s.Config.Tools.RCC)
	assert.Equal(t, config.DefaultPython, s.Config.Tools.Python)
	assert.Nil(t, s.Tagger)

	runner, ok := s.Runner.(*proc.ExecRunner)
	require.True(t, ok)
	assert.Equal(t, time.Minute, runner.Timeout)

	// FS is rooted at the project directory.
	exists, err := afero.Exists(s.FS, "relkit.cue")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewSession_UploadOutsideRepository(t *testing.T) {
	root := writeProject(t)

	s, err := NewSession(globalConfig(root), &ToolFlags{}, &ReleaseFlags{Strict: true})
	require.NoError(t, err)

	assert.Nil(t, s.Tagger)
	assert.True(t, s.Release.Strict)
	assert.False(t, s.Release.PushTags)
}

func TestNewSession_UploadInRepository(t *testing.T) {
	root := writeProject(t)
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	gc := globalConfig(root)
	gc.Config.Release.PushTags = true

	s, err := NewSession(gc, &ToolFlags{}, &ReleaseFlags{})
	require.NoError(t, err)

	assert.NotNil(t, s.Tagger)
	assert.True(t, s.Release.PushTags, "config enables pushing")
}

func TestNewSession_PushTagsFlagOverridesConfig(t *testing.T) {
	root := writeProject(t)
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	gc := globalConfig(root)
	gc.Config.Release.PushTags = true

	s, err := NewSession(gc, &ToolFlags{}, &ReleaseFlags{PushTags: false, PushTagsSet: true})
	require.NoError(t, err)
	assert.False(t, s.Release.PushTags)
}

func TestNewSession_ProjectErrors(t *testing.T) {
	_, err := NewSession(globalConfig(t.TempDir()), &ToolFlags{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}
