// Package resources compiles the Qt resource-definition file into an
// importable module for each configured target directory.
package resources

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/proc"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/step"
)

// StepName is the command-table name of resource compilation.
const StepName = "build_resources"

// Result is the outcome of a compilation run.
type Result struct {
	step.Result
	// Generated lists absolute paths of modules written.
	Generated []string
}

// Compiler runs the resource compiler once per target directory.
type Compiler struct {
	runner   proc.Runner
	tool     string
	root     string
	settings project.Resources
}

// NewCompiler creates a Compiler for the project described by md. tool is
// the compiler executable, normally pyrcc5.
func NewCompiler(runner proc.Runner, tool string, md *project.Metadata) *Compiler {
	return &Compiler{
		runner:   runner,
		tool:     tool,
		root:     md.Root,
		settings: md.Resources,
	}
}

// Plan returns the commands Compile would run, in order. The qrc path of
// each command is relative to its working directory.
func (c *Compiler) Plan() ([]proc.Cmd, error) {
	qrc := filepath.Join(c.root, filepath.FromSlash(c.settings.QRC))

	cmds := make([]proc.Cmd, 0, len(c.settings.Targets))
	for _, target := range c.settings.Targets {
		dir := filepath.Join(c.root, filepath.FromSlash(target))
		rel, err := filepath.Rel(dir, qrc)
		if err != nil {
			return nil, fmt.Errorf("resolving %s relative to %s: %w", c.settings.QRC, target, err)
		}
		cmds = append(cmds, proc.Cmd{
			Name: c.tool,
			Args: []string{filepath.ToSlash(rel), "-o", c.settings.Output},
			Dir:  dir,
		})
	}
	return cmds, nil
}

// Diagnostic is the message printed when compilation fails.
func (c *Compiler) Diagnostic() string {
	return fmt.Sprintf("Error: Failed to compile Qt resources. Ensure %s is installed.", filepath.Base(c.tool))
}

// Compile runs the compiler for every target. It never returns an error:
// a missing tool or failing run prints the diagnostic and yields a warn
// result, and the remaining targets are not attempted.
func (c *Compiler) Compile(ctx context.Context) (res Result) {
	log := output.StepLogger(StepName)
	start := time.Now()
	res = Result{Result: step.Result{Name: StepName, Status: step.OK}}
	defer func() { res.Duration = time.Since(start) }()

	output.Println("Compiling resources")

	cmds, err := c.Plan()
	if err != nil {
		return c.fail(&res, err)
	}

	for _, cmd := range cmds {
		log.Debug("compiling", "dir", cmd.Dir, "cmd", cmd.String())
		if err := c.runner.Run(ctx, cmd); err != nil {
			log.Warn("resource compilation failed", "dir", cmd.Dir, "err", firstLine(err))
			return c.fail(&res, err)
		}
		res.Generated = append(res.Generated, filepath.Join(cmd.Dir, c.settings.Output))
	}

	log.Info("resources compiled", "files", len(res.Generated))
	return res
}

func (c *Compiler) fail(res *Result, err error) Result {
	output.Status(c.Diagnostic())
	res.Status = step.Warn
	res.Err = err
	res.Detail = "resource compiler unavailable or failed"
	return *res
}

func firstLine(err error) string {
	return step.Result{Err: err}.Message()
}
