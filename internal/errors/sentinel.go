package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates the project manifest or metadata failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a manifest, version file, or document was not found.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrToolMissing indicates an external tool is not available on PATH.
	ErrToolMissing = errors.New("tool not found")

	// ErrStep indicates an orchestrated step (build, upload, tag, install) failed.
	ErrStep = errors.New("step failed")
)
