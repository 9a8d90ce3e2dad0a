package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const labelImgCUE = `
name:        "labelImg"
description: "LabelImg is a graphical image annotation tool and label object bounding boxes in images"
author:      "TzuTa Lin"
authorEmail: "tzu.ta.lin@gmail.com"
license:     "MIT license"
url:         "https://github.com/tzutalin/labelImg"
requires: ["pyqt5", "lxml"]
keywords: ["labelImg", "labelTool", "development", "annotation", "deeplearning"]
packages: {
	include: ["labelImg", "libs", "labelImg.*"]
	extra: ["labelImg"]
}
packageDir: labelImg: "."
packageData: "data/predefined_classes.txt": ["data/predefined_classes.txt"]
entryPoints: consoleScripts: ["labelImg=labelImg.labelImg:main"]
`

// writeTree creates files under a fresh temp directory and returns it.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

// labelImgTree returns a minimal project laid out like labelImg.
func labelImgTree(manifestName, manifest string) map[string]string {
	return map[string]string{
		manifestName:               manifest,
		"libs/__init__.py":         "__version_info__ = ('1', '8', '6')\n__version__ = '1.8.6'\n",
		"libs/utils.py":            "",
		"README.rst":               "LabelImg\n========",
		"HISTORY.rst":              "History\n=======",
		"labelImg/__init__.py":     "",
		"labelImg/sub/__init__.py": "",
		"tests/__init__.py":        "",
	}
}
