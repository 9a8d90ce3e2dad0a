package lifecycle

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/afero"

	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/proc"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/release"
	"github.com/opmodel/relkit/internal/resources"
	"github.com/opmodel/relkit/internal/step"
)

// Command names, in table order.
const (
	CmdBuildResources = resources.StepName
	CmdInstall        = "install"
	CmdDevelop        = "develop"
	CmdUpload         = "upload"
)

// Env carries everything a handler needs. It is assembled once per
// invocation by the CLI.
type Env struct {
	Metadata *project.Metadata
	Config   *config.Config
	Runner   proc.Runner

	// FS is rooted at the project directory.
	FS     afero.Fs
	Tagger release.Tagger

	// Release holds the upload workflow flags; Version and TagPrefix are
	// filled in from Metadata and Config when empty.
	Release release.Options

	// Platform is the host identifier. Empty means runtime.GOOS.
	Platform string
}

// PlatformID returns the effective platform identifier.
func (e *Env) PlatformID() string {
	if e.Platform != "" {
		return e.Platform
	}
	return runtime.GOOS
}

// command parses a configured command line and fills in the resolved tools.
func (e *Env) command(line string) (proc.Cmd, error) {
	c, err := proc.ParseTemplate(line, e.Config.Tools.Placeholders())
	if err != nil {
		return proc.Cmd{}, err
	}
	return c.InDir(e.Metadata.Root), nil
}

// Handler runs one table command.
type Handler func(ctx context.Context, env *Env) (*step.Report, error)

// Entry is one row of the command table.
type Entry struct {
	Name    string
	Short   string
	Handler Handler
}

// Table maps command names to handlers in registration order.
type Table []Entry

// DefaultTable returns the built-in command table.
func DefaultTable() Table {
	return Table{
		{Name: CmdBuildResources, Short: "Compile Qt resources into resources.py", Handler: BuildResources},
		{Name: CmdInstall, Short: "Compile resources, then install the package", Handler: Install},
		{Name: CmdDevelop, Short: "Compile resources, then install in editable mode", Handler: Develop},
		{Name: CmdUpload, Short: "Build, upload and tag a release", Handler: Upload},
	}
}

// Names returns the command names in order.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}

// Lookup finds the entry named name.
func (t Table) Lookup(name string) (Entry, bool) {
	for _, e := range t {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// compileStep wraps the resource compiler as an orchestrator step.
func compileStep(env *Env) Step {
	return Step{
		Name: CmdBuildResources,
		Run: func(ctx context.Context) step.Result {
			c := resources.NewCompiler(env.Runner, env.Config.Tools.RCC, env.Metadata)
			return c.Compile(ctx).Result
		},
	}
}

// commandStep runs a configured command line as the base action.
func commandStep(env *Env, name, line string) Step {
	return Step{
		Name: name,
		Run: func(ctx context.Context) step.Result {
			c, err := env.command(line)
			if err != nil {
				return step.Result{Status: step.Failed, Err: fmt.Errorf("%s command: %w", name, err)}
			}
			output.StepLogger(name).Info("running", "cmd", c.String())
			if err := env.Runner.Run(ctx, c); err != nil {
				return step.Result{Status: step.Failed, Err: err}
			}
			return step.Result{Status: step.OK}
		},
	}
}

// BuildResources compiles resources only. It never fails.
func BuildResources(ctx context.Context, env *Env) (*step.Report, error) {
	o := &Orchestrator{Base: compileStep(env)}
	return o.Run(ctx)
}

// Install compiles resources and installs the package.
func Install(ctx context.Context, env *Env) (*step.Report, error) {
	o := &Orchestrator{
		Banner: "Running custom install command",
		Pre:    []Step{compileStep(env)},
		Base:   commandStep(env, CmdInstall, env.Config.Commands.Install),
	}
	return o.Run(ctx)
}

// Develop compiles resources and installs the package in editable mode.
func Develop(ctx context.Context, env *Env) (*step.Report, error) {
	o := &Orchestrator{
		Banner: "Running custom develop command",
		Pre:    []Step{compileStep(env)},
		Base:   commandStep(env, CmdDevelop, env.Config.Commands.Develop),
	}
	return o.Run(ctx)
}

// Upload runs the release workflow.
func Upload(ctx context.Context, env *Env) (*step.Report, error) {
	r, err := NewReleaser(env)
	if err != nil {
		return nil, err
	}
	rep := r.Run(ctx)
	return rep, rep.Err()
}

// NewReleaser builds the release workflow for env.
func NewReleaser(env *Env) (*release.Releaser, error) {
	build, err := env.command(env.Config.Commands.Build)
	if err != nil {
		return nil, fmt.Errorf("build command: %w", err)
	}
	upload, err := env.command(env.Config.Commands.Upload)
	if err != nil {
		return nil, fmt.Errorf("upload command: %w", err)
	}

	opts := env.Release
	if opts.Version == "" {
		opts.Version = env.Metadata.Version
	}
	if opts.TagPrefix == "" {
		opts.TagPrefix = env.Config.Release.TagPrefix
	}
	if opts.Remote == "" {
		opts.Remote = env.Config.Release.Remote
	}

	return release.New(env.FS, env.Metadata.Root, env.Runner, env.Tagger, build, upload, opts), nil
}
