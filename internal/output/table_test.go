package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	out := NewTable("NAME", "DESCRIPTION").
		Row("install", "compile resources, then pip install").
		Row("upload", "build, upload and tag a release").
		String()

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "install")
	assert.Contains(t, out, "build, upload and tag a release")
}

func TestRenderStepTable(t *testing.T) {
	out := stripAnsi(RenderStepTable([]StepRow{
		{Name: "clean", Status: StatusWarn, Duration: "1ms", Message: "dist not found"},
		{Name: "build", Status: StatusOK, Duration: "3s"},
	}))

	assert.Contains(t, out, "STEP")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "warn")
	assert.Contains(t, out, "dist not found")
	assert.Contains(t, out, "build")
}
