// Package release runs the upload workflow: clean previous builds, build the
// source and wheel distributions, upload them, and tag the release.
package release

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/proc"
	"github.com/opmodel/relkit/internal/step"
)

// Step names, in execution order.
const (
	StepClean  = "clean"
	StepBuild  = "build"
	StepUpload = "upload"
	StepTag    = "tag"
)

// DistDir is the build output directory, relative to the project root.
const DistDir = "dist"

// distPattern selects the files handed to the upload tool.
const distPattern = DistDir + "/*"

// Status lines printed before each step.
const (
	msgClean     = "Removing previous builds…"
	msgCleanFail = "Fail to remove previous builds.."
	msgBuild     = "Building Source and Wheel (universal) distribution…"
	msgUpload    = "Uploading the package to PyPI via Twine…"
	msgTag       = "Pushing git tags…"
)

// Tagger manages release tags in the project repository.
type Tagger interface {
	// RecreateTag deletes name if it exists and creates it at HEAD.
	RecreateTag(ctx context.Context, name string) error
	// PushTags pushes tags to remote.
	PushTags(ctx context.Context, remote string) error
	// TagTarget returns the commit hash name points to.
	TagTarget(name string) (string, error)
}

// Options controls the workflow.
type Options struct {
	// Version is the release version; the tag is TagPrefix + Version.
	Version   string
	TagPrefix string

	// Strict stops at the first failed step. Later steps are skipped.
	Strict bool

	// DryRun prints the plan without touching anything.
	DryRun bool

	// PushTags pushes the tag to Remote after creating it.
	PushTags bool
	Remote   string

	// Spinner runs each step under a terminal spinner.
	Spinner bool
}

// TagName returns the release tag name.
func (o Options) TagName() string {
	return o.TagPrefix + o.Version
}

// Releaser runs the release steps against a filesystem rooted at the
// project directory.
type Releaser struct {
	fs     afero.Fs
	runner proc.Runner
	tagger Tagger
	build  proc.Cmd
	upload proc.Cmd
	opts   Options
}

// New creates a Releaser. fsys must be rooted at root (see afero.NewBasePathFs);
// build and upload are the parsed tool command lines.
func New(fsys afero.Fs, root string, runner proc.Runner, tagger Tagger, build, upload proc.Cmd, opts Options) *Releaser {
	return &Releaser{
		fs:     fsys,
		runner: runner,
		tagger: tagger,
		build:  build.InDir(root),
		upload: upload.InDir(root),
		opts:   opts,
	}
}

// PlannedStep describes one step without running it.
type PlannedStep struct {
	Name        string
	Description string
}

// Plan returns the steps Run would execute.
func (r *Releaser) Plan() []PlannedStep {
	plan := []PlannedStep{
		{StepClean, "remove " + DistDir + "/"},
		{StepBuild, r.build.String()},
		{StepUpload, r.upload.With(distPattern).String()},
		{StepTag, fmt.Sprintf("recreate tag %s at HEAD", r.opts.TagName())},
	}
	if r.opts.PushTags {
		plan[3].Description += ", push tags to " + r.opts.Remote
	}
	return plan
}

type stepFunc func(ctx context.Context) step.Result

// Run executes the workflow and returns the report. Failed steps do not stop
// later ones unless Options.Strict is set. Run itself never returns an
// error; callers inspect Report.Err.
func (r *Releaser) Run(ctx context.Context) *step.Report {
	rep := &step.Report{}

	if r.opts.DryRun {
		for _, p := range r.Plan() {
			output.Println(output.FormatStepLine(p.Name, output.StatusSkipped) + "  " + output.StyleDim.Render(p.Description))
			rep.Add(step.Result{Name: p.Name, Status: step.Skipped, Detail: "dry run: " + p.Description})
		}
		return rep
	}

	steps := []struct {
		name  string
		title string
		fn    stepFunc
	}{
		{StepClean, msgClean, r.clean},
		{StepBuild, msgBuild, r.runBuild},
		{StepUpload, msgUpload, r.runUpload},
		{StepTag, msgTag, r.tag},
	}

	stop := false
	for _, s := range steps {
		if stop {
			rep.Add(step.Result{Name: s.name, Status: step.Skipped, Detail: "skipped after earlier failure"})
			continue
		}
		if err := ctx.Err(); err != nil {
			rep.Add(step.Result{Name: s.name, Status: step.Failed, Err: err})
			stop = true
			continue
		}

		output.Status(s.title)
		res := r.timed(ctx, s.name, s.title, s.fn)
		// Printed once the spinner has released the terminal.
		if s.name == StepClean && res.Status == step.Warn {
			output.Status(msgCleanFail)
		}
		rep.Add(res)
		output.StepLogger(s.name).Debug("step finished", "status", res.Status, "duration", res.Duration.Round(time.Millisecond))

		if res.Status == step.Failed && r.opts.Strict {
			stop = true
		}
	}
	return rep
}

// timed runs fn, under a spinner when enabled, and stamps name and duration.
func (r *Releaser) timed(ctx context.Context, name, title string, fn stepFunc) step.Result {
	return step.Timed(name, func() step.Result {
		var res step.Result
		_ = output.RunWithSpinner(ctx, func(ctx context.Context) error {
			res = fn(ctx)
			return nil
		}, output.WithTitle(title), output.WithoutSpinner(!r.opts.Spinner))
		return res
	})
}

// clean removes the dist directory. A missing directory or removal error
// is a warning; the workflow continues. It prints nothing to stdout since it
// may run under the spinner.
func (r *Releaser) clean(_ context.Context) step.Result {
	log := output.StepLogger(StepClean)

	if _, err := r.fs.Stat(DistDir); err != nil {
		log.Debug("nothing to remove", "dir", DistDir, "err", err)
		return step.Result{Status: step.Warn, Err: err, Detail: DistDir + " not found"}
	}

	if err := r.fs.RemoveAll(DistDir); err != nil {
		log.Warn("removing previous builds", "err", err)
		return step.Result{Status: step.Warn, Err: err, Detail: "could not remove " + DistDir}
	}
	return step.Result{Status: step.OK}
}

func (r *Releaser) runBuild(ctx context.Context) step.Result {
	if err := r.runner.Run(ctx, r.build); err != nil {
		return step.Result{Status: step.Failed, Err: err}
	}
	return step.Result{Status: step.OK}
}

func (r *Releaser) runUpload(ctx context.Context) step.Result {
	files, err := r.distFiles()
	if err != nil {
		return step.Result{Status: step.Failed, Err: err}
	}
	if len(files) == 0 {
		return step.Result{
			Status: step.Failed,
			Err:    fmt.Errorf("no files match %s", distPattern),
			Detail: "nothing to upload",
		}
	}

	output.StepLogger(StepUpload).Debug("uploading", "files", files)
	if err := r.runner.Run(ctx, r.upload.With(files...)); err != nil {
		return step.Result{Status: step.Failed, Err: err}
	}
	return step.Result{Status: step.OK, Detail: fmt.Sprintf("%d files", len(files))}
}

// distFiles expands dist/* against the release filesystem. Directories are
// excluded. Returned paths are relative to the project root.
func (r *Releaser) distFiles() ([]string, error) {
	iofs := afero.NewIOFS(r.fs)
	matches, err := doublestar.Glob(iofs, distPattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", distPattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(iofs, m)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path.Clean(m))
		}
	}
	slices.Sort(files)
	return files, nil
}

func (r *Releaser) tag(ctx context.Context) step.Result {
	if r.tagger == nil {
		return step.Result{Status: step.Skipped, Detail: "not a git repository"}
	}

	name := r.opts.TagName()
	if err := r.tagger.RecreateTag(ctx, name); err != nil {
		return step.Result{Status: step.Failed, Err: fmt.Errorf("tagging %s: %w", name, err)}
	}
	detail := name
	if target, err := r.tagger.TagTarget(name); err != nil {
		output.StepLogger(StepTag).Debug("resolving tag target", "tag", name, "err", err)
	} else {
		detail += " at " + shortHash(target)
	}

	if !r.opts.PushTags {
		return step.Result{Status: step.OK, Detail: detail}
	}

	if err := r.tagger.PushTags(ctx, r.opts.Remote); err != nil {
		return step.Result{Status: step.Failed, Err: fmt.Errorf("pushing tags to %s: %w", r.opts.Remote, err)}
	}
	return step.Result{Status: step.OK, Detail: detail + ", pushed to " + r.opts.Remote}
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
