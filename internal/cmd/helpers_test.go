package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opmodel/relkit/internal/output"
)

const labelImgCUE = `
name:        "labelImg"
description: "LabelImg is a graphical image annotation tool and label object bounding boxes in images"
author:      "TzuTa Lin"
authorEmail: "tzu.ta.lin@gmail.com"
license:     "MIT license"
url:         "https://github.com/tzutalin/labelImg"
requires: ["pyqt5", "lxml"]
packages: include: ["labelImg", "libs", "labelImg.*"]
entryPoints: consoleScripts: ["labelImg=labelImg.labelImg:main"]
`

// writeProject lays out a minimal labelImg project and returns its root.
func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"relkit.cue":           labelImgCUE,
		"libs/__init__.py":     "__version__ = '1.8.6'\n",
		"labelImg/__init__.py": "",
		"README.rst":           "LabelImg\n========",
		"HISTORY.rst":          "History\n=======",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

// isolateEnv points HOME at a temp dir and clears relkit env overrides.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{
		"RELKIT_CONFIG", "RELKIT_PROJECT",
		"RELKIT_TOOLS_PYTHON", "RELKIT_TOOLS_RCC", "RELKIT_TOOLS_TWINE",
	} {
		t.Setenv(k, "")
	}
	return home
}

// runRoot executes the root command with args and returns what was written
// to the user-facing output.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	restore := output.SetStdout(&buf)
	defer restore()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
