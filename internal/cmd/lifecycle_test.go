package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/relkit/internal/errors"
)

func TestLifecycleCmd_ReleaseFlagsOnlyOnUpload(t *testing.T) {
	root := NewRootCmd()

	upload, _, err := root.Find([]string{"upload"})
	require.NoError(t, err)
	for _, name := range []string{"strict", "dry-run", "push-tags", "remote", "python", "twine"} {
		assert.NotNil(t, upload.Flags().Lookup(name), name)
	}

	install, _, err := root.Find([]string{"install"})
	require.NoError(t, err)
	assert.Nil(t, install.Flags().Lookup("dry-run"))
	assert.NotNil(t, install.Flags().Lookup("rcc"))
}

func TestBuildResources_MissingCompilerWarns(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t)

	out, err := runRoot(t, "build-resources", "-C", dir, "--rcc", "relkit-missing-rcc")
	require.NoError(t, err)

	assert.Contains(t, out, "Compiling resources")
	assert.Contains(t, out, "Error: Failed to compile Qt resources. Ensure relkit-missing-rcc is installed.")
	assert.Contains(t, out, "build_resources complete with warnings")
}

func TestInstall_MissingInterpreterFails(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t)

	out, err := runRoot(t, "install", "-C", dir,
		"--rcc", "relkit-missing-rcc",
		"--python", "relkit-missing-python",
	)
	require.Error(t, err)

	assert.Contains(t, out, "Running custom install command")
	assert.Equal(t, oerrors.ExitStepFailed, oerrors.ExitCodeFromError(err))
}

func TestUpload_DryRun(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t)

	out, err := runRoot(t, "upload", "-C", dir, "--dry-run")
	require.NoError(t, err)

	for _, name := range []string{"clean", "build", "upload", "tag"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "upload complete")
}

func TestUpload_FailingStepsSetExitCode(t *testing.T) {
	isolateEnv(t)
	dir := writeProject(t)

	_, err := runRoot(t, "upload", "-C", dir,
		"--python", "relkit-missing-python",
		"--twine", "relkit-missing-twine",
	)
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.True(t, exitErr.Printed)
	assert.Equal(t, oerrors.ExitStepFailed, exitErr.Code)
}

func TestLifecycleCmd_MissingManifest(t *testing.T) {
	isolateEnv(t)

	_, err := runRoot(t, "install", "-C", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}
