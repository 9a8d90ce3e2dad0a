//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrStep)
	assert.NotEqual(t, ErrToolMissing, ErrStep)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "version drift",
		Location: "/src/labelImg/relkit.cue",
		Field:    "version",
		Context:  map[string]string{"VersionFile": "libs/__init__.py", "Declared": "1.8.5"},
		Hint:     "Remove the static version or update the version file",
	}

	out := detail.Error()

	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: /src/labelImg/relkit.cue")
	assert.Contains(t, out, "Field: version")
	assert.Contains(t, out, "VersionFile: libs/__init__.py")
	assert.Contains(t, out, "version drift")
	assert.Contains(t, out, "Hint: Remove the static version")

	// Context keys are sorted
	assert.Less(t, strings.Index(out, "Declared"), strings.Index(out, "VersionFile"))
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{Type: "test", Message: "test message", Cause: ErrNotFound}

	assert.True(t, errors.Is(detail, ErrNotFound))
	assert.Equal(t, ErrNotFound, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("name must not be empty", "relkit.cue", "name", "")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "name", detail.Field)
}

func TestNewToolMissingError(t *testing.T) {
	err := NewToolMissingError("pyrcc5", "install PyQt5")

	assert.True(t, errors.Is(err, ErrToolMissing))
	assert.Contains(t, err.Error(), "pyrcc5")
	assert.Equal(t, ExitStepFailed, ExitCodeFromError(err))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "manifest check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "manifest check failed")
}

func TestWrapStep(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := WrapStep("upload", cause)

	assert.True(t, errors.Is(err, ErrStep))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "upload")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", Wrap(ErrValidation, "x"), ExitValidationError},
		{"not found", NewNotFoundError("README.rst missing", "", ""), ExitNotFound},
		{"permission", Wrap(ErrPermission, "x"), ExitPermissionDenied},
		{"step", WrapStep("build", errors.New("boom")), ExitStepFailed},
		{"explicit exit error", NewExitError(errors.New("x"), 42), 42},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(errors.New("x"), 7)), 7},
		{"unknown", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Step Failed", ExitCodeName(ExitStepFailed))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
