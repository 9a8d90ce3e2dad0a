// Package proc runs external tools (pip, twine, the resource compiler)
// synchronously on behalf of relkit commands.
package proc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
)

// Cmd describes one external process invocation.
type Cmd struct {
	// Name is the executable, looked up on PATH.
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
}

// String renders the command line for logs and dry-run plans.
func (c Cmd) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range append([]string{c.Name}, c.Args...) {
		if p == "" || strings.ContainsAny(p, " \t\"'") {
			p = fmt.Sprintf("%q", p)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// With returns a copy of c with extra arguments appended.
func (c Cmd) With(args ...string) Cmd {
	out := c
	out.Args = append(append([]string(nil), c.Args...), args...)
	return out
}

// InDir returns a copy of c that runs in dir.
func (c Cmd) InDir(dir string) Cmd {
	out := c
	out.Dir = dir
	return out
}

// Runner executes commands.
type Runner interface {
	// Run executes cmd and waits for it. A missing executable yields an
	// error matching errors.ErrToolMissing; a non-zero exit yields *ExitError.
	Run(ctx context.Context, cmd Cmd) error
	// LookPath resolves an executable name.
	LookPath(name string) (string, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Cmd  Cmd
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Cmd.Name, e.Code)
}

// Parse splits a configured command line into a Cmd using shell quoting
// rules. No shell is involved.
func Parse(line string) (Cmd, error) {
	return ParseTemplate(line, nil)
}

// ParseTemplate splits line like Parse, then replaces {name} placeholders
// inside each word with vars[name]. Values are substituted after splitting,
// so paths containing spaces or backslashes reach the process unchanged.
func ParseTemplate(line string, vars map[string]string) (Cmd, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Cmd{}, fmt.Errorf("command cannot be empty")
	}
	if strings.ContainsAny(line, "\n\r") {
		return Cmd{}, fmt.Errorf("command cannot contain newlines")
	}

	parts, err := shlex.Split(line)
	if err != nil {
		return Cmd{}, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(parts) == 0 {
		return Cmd{}, fmt.Errorf("command cannot be empty after parsing")
	}

	if len(vars) > 0 {
		pairs := make([]string, 0, 2*len(vars))
		for name, value := range vars {
			pairs = append(pairs, "{"+name+"}", value)
		}
		r := strings.NewReplacer(pairs...)
		for i, p := range parts {
			parts[i] = r.Replace(p)
		}
	}

	if strings.TrimSpace(parts[0]) == "" {
		return Cmd{}, fmt.Errorf("command name is empty after expanding %q", line)
	}
	if strings.HasPrefix(parts[0], "-") {
		return Cmd{}, fmt.Errorf("command name cannot start with dash: %q", parts[0])
	}

	return Cmd{Name: parts[0], Args: parts[1:]}, nil
}

// ToolMissing builds the error returned when name is not on PATH.
func ToolMissing(name string) error {
	return oerrors.NewToolMissingError(name, "Install "+name+" or set its path in the relkit config")
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive child output. Nil means the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout bounds each command. Zero means no timeout.
	Timeout time.Duration
}

// NewExecRunner creates a runner that streams child output to the terminal.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LookPath implements Runner.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Cmd) error {
	path, err := r.LookPath(c.Name)
	if err != nil {
		output.Debug("lookup failed", "tool", c.Name, "err", err)
		return ToolMissing(c.Name)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	output.Debug("running command", "cmd", c.String(), "dir", c.Dir)
	start := time.Now()

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", c.Name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: c, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("%s: %w", c.Name, err)
	}

	output.Debug("command finished", "cmd", c.Name, "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
