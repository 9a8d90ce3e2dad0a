package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// toolVersionRegex matches version output like "twine version 5.1.1" or "Python 3.12.3".
var toolVersionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?(?:[-.+][a-zA-Z0-9.]+)?`)

// probeTimeout bounds a single "<tool> --version" call.
const probeTimeout = 5 * time.Second

// ToolInfo describes an external tool found (or not) on PATH.
type ToolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// String returns a one-line human-readable description.
func (t ToolInfo) String() string {
	if !t.Found {
		return fmt.Sprintf("  %-8s not found", t.Name)
	}
	if t.Version == "" {
		return fmt.Sprintf("  %-8s %s (version unknown: %s)", t.Name, t.Path, t.Message)
	}
	return fmt.Sprintf("  %-8s %s (%s)", t.Name, t.Path, t.Version)
}

// DetectTool finds tool on PATH and asks it for its version. versionArgs
// defaults to "--version".
func DetectTool(ctx context.Context, tool string, versionArgs ...string) ToolInfo {
	info := ToolInfo{Name: tool}

	path, err := exec.LookPath(tool)
	if err != nil {
		info.Message = tool + " not found in PATH"
		return info
	}
	info.Path = path
	info.Found = true

	if len(versionArgs) == 0 {
		versionArgs = []string{"--version"}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, versionArgs...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}

	v, err := extractVersion(out.String())
	if err != nil {
		info.Message = err.Error()
		return info
	}
	info.Version = v
	return info
}

// extractVersion pulls the first version number out of tool output.
func extractVersion(output string) (string, error) {
	firstLine := strings.SplitN(strings.TrimSpace(output), "\n", 2)[0]
	if match := toolVersionRegex.FindString(firstLine); match != "" {
		return match, nil
	}
	if match := toolVersionRegex.FindString(output); match != "" {
		return match, nil
	}
	return "", &versionParseError{output: output}
}

// versionParseError indicates failure to parse tool version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
