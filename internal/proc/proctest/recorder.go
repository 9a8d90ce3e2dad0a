// Package proctest provides a recording proc.Runner for tests.
package proctest

import (
	"context"
	"os/exec"
	"sync"

	"github.com/opmodel/relkit/internal/proc"
)

// Recorder is a proc.Runner that records every command instead of running
// it.
type Recorder struct {
	mu sync.Mutex

	// Calls holds every command passed to Run, in order.
	Calls []proc.Cmd

	// Missing names executables that LookPath and Run treat as absent.
	Missing map[string]bool

	// Fail maps an executable name to the exit code Run reports for it.
	Fail map[string]int

	// OnRun, if set, is called for commands that are neither missing nor
	// failing. Its error is returned from Run.
	OnRun func(proc.Cmd) error
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Missing: make(map[string]bool),
		Fail:    make(map[string]int),
	}
}

// LookPath implements proc.Runner.
func (r *Recorder) LookPath(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Run implements proc.Runner.
func (r *Recorder) Run(ctx context.Context, c proc.Cmd) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.Calls = append(r.Calls, c)
	missing := r.Missing[c.Name]
	code, failing := r.Fail[c.Name]
	hook := r.OnRun
	r.mu.Unlock()

	if missing {
		return proc.ToolMissing(c.Name)
	}
	if failing {
		return &proc.ExitError{Cmd: c, Code: code}
	}
	if hook != nil {
		return hook(c)
	}
	return nil
}

// Commands returns the recorded command lines.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.String()
	}
	return out
}
