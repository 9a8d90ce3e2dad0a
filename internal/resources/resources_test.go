package resources

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/proc"
	"github.com/opmodel/relkit/internal/proc/proctest"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/step"
)

func testMetadata(t *testing.T) *project.Metadata {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "libs"), 0o755))
	return &project.Metadata{
		Manifest: project.Manifest{
			Name: "labelImg",
			Resources: project.Resources{
				QRC:     "resources.qrc",
				Output:  "resources.py",
				Targets: []string{".", "libs"},
			},
		},
		Root: root,
	}
}

// writeOutput simulates the compiler by creating the -o file in cmd.Dir.
func writeOutput(c proc.Cmd) error {
	out := c.Args[len(c.Args)-1]
	return os.WriteFile(filepath.Join(c.Dir, out), []byte("# generated\n"), 0o644)
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := output.SetStdout(&buf)
	t.Cleanup(restore)
	return &buf
}

func TestCompiler_Plan(t *testing.T) {
	md := testMetadata(t)
	c := NewCompiler(proctest.New(), "pyrcc5", md)

	cmds, err := c.Plan()
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	assert.Equal(t, md.Root, cmds[0].Dir)
	assert.Equal(t, []string{"resources.qrc", "-o", "resources.py"}, cmds[0].Args)

	assert.Equal(t, filepath.Join(md.Root, "libs"), cmds[1].Dir)
	assert.Equal(t, []string{"../resources.qrc", "-o", "resources.py"}, cmds[1].Args)
}

func TestCompiler_GeneratesModuleInEveryTarget(t *testing.T) {
	md := testMetadata(t)
	rec := proctest.New()
	rec.OnRun = writeOutput
	captureStdout(t)

	res := NewCompiler(rec, "pyrcc5", md).Compile(context.Background())

	assert.Equal(t, step.OK, res.Status)
	assert.NoError(t, res.Err)
	assert.FileExists(t, filepath.Join(md.Root, "resources.py"))
	assert.FileExists(t, filepath.Join(md.Root, "libs", "resources.py"))
	assert.Equal(t, []string{
		filepath.Join(md.Root, "resources.py"),
		filepath.Join(md.Root, "libs", "resources.py"),
	}, res.Generated)
}

func TestCompiler_ToolMissingIsNonFatal(t *testing.T) {
	md := testMetadata(t)
	rec := proctest.New()
	rec.Missing["pyrcc5"] = true
	out := captureStdout(t)

	res := NewCompiler(rec, "pyrcc5", md).Compile(context.Background())

	assert.Equal(t, step.Warn, res.Status)
	assert.Contains(t, out.String(), "Error: Failed to compile Qt resources. Ensure pyrcc5 is installed.")
	assert.Empty(t, res.Generated)
	assert.Len(t, rec.Calls, 1, "remaining targets are not attempted")
}

func TestCompiler_FailureStopsRemainingTargets(t *testing.T) {
	md := testMetadata(t)
	rec := proctest.New()
	rec.OnRun = func(c proc.Cmd) error {
		if c.Dir == filepath.Join(md.Root, "libs") {
			return &proc.ExitError{Cmd: c, Code: 1}
		}
		return writeOutput(c)
	}
	out := captureStdout(t)

	md.Resources.Targets = []string{".", "libs", "labelImg"}
	res := NewCompiler(rec, "pyrcc5", md).Compile(context.Background())

	assert.Equal(t, step.Warn, res.Status)
	assert.Len(t, rec.Calls, 2)
	assert.Equal(t, []string{filepath.Join(md.Root, "resources.py")}, res.Generated)
	assert.Contains(t, out.String(), "Failed to compile Qt resources")
}

func TestCompiler_DiagnosticUsesToolName(t *testing.T) {
	c := NewCompiler(proctest.New(), "/opt/qt/bin/pyside6-rcc", testMetadata(t))
	assert.Equal(t, "Error: Failed to compile Qt resources. Ensure pyside6-rcc is installed.", c.Diagnostic())
}
