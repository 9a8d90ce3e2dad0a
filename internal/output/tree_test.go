package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPackageTree(t *testing.T) {
	out := stripAnsi(RenderPackageTree("labelImg",
		[]string{"libs", "labelImg", "labelImg.sub"},
		map[string]string{"labelImg": "extra"},
	))

	assert.Equal(t, "labelImg/\n"+
		"├── labelImg                  extra\n"+
		"│   └── sub\n"+
		"└── libs\n", out)
}

func TestRenderPackageTree_Namespace(t *testing.T) {
	out := stripAnsi(RenderPackageTree("proj", []string{"ns.inner"}, nil))

	assert.Contains(t, out, "└── ns")
	assert.Contains(t, out, "(namespace)")
	assert.Contains(t, out, "    └── inner")
}

func TestRenderPackageTree_Empty(t *testing.T) {
	assert.Empty(t, RenderPackageTree("proj", nil, nil))
}
