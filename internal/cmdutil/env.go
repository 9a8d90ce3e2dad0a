package cmdutil

import (
	"bytes"
	"errors"
	"strings"

	"github.com/spf13/afero"

	"github.com/opmodel/relkit/internal/config"
	"github.com/opmodel/relkit/internal/lifecycle"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/proc"
	"github.com/opmodel/relkit/internal/project"
	"github.com/opmodel/relkit/internal/release"
	"github.com/opmodel/relkit/internal/vcs"
)

// Session is a lifecycle environment plus the terminal state of one
// command invocation.
type Session struct {
	*lifecycle.Env

	// captured holds child process output while a spinner owns the terminal.
	captured *bytes.Buffer
}

// DumpCaptured prints captured child output, if any. Called after a failed
// run so the tool's own error messages are not lost.
func (s *Session) DumpCaptured() {
	if s.captured == nil || s.captured.Len() == 0 {
		return
	}
	output.Details(strings.TrimRight(s.captured.String(), "\n"))
}

// NewSession loads the project and assembles the environment for a table
// command. rf is nil for commands other than upload.
func NewSession(gc *config.GlobalConfig, tf *ToolFlags, rf *ReleaseFlags) (*Session, error) {
	md, err := project.Load(gc.ProjectDir)
	if err != nil {
		return nil, err
	}
	output.Debug("project loaded",
		"name", md.Name,
		"version", md.Version,
		"root", md.Root,
		"manifest", md.Source,
	)

	cfg := *gc.Config.WithDefaults()
	tools := tf.Resolve(gc.Config)
	config.LogResolvedValues(tools.All())
	cfg.Tools = tools.Values()

	runner := proc.NewExecRunner()
	runner.Timeout = tf.Timeout

	s := &Session{
		Env: &lifecycle.Env{
			Metadata: md,
			Config:   &cfg,
			Runner:   runner,
			FS:       afero.NewBasePathFs(afero.NewOsFs(), md.Root),
		},
	}

	if rf == nil {
		return s, nil
	}

	spin := output.IsTTY() && !gc.Flags.Verbose && !rf.DryRun
	if spin {
		s.captured = &bytes.Buffer{}
		runner.Stdout = s.captured
		runner.Stderr = s.captured
	}

	s.Release = release.Options{
		Strict:   rf.Strict,
		DryRun:   rf.DryRun,
		PushTags: rf.ResolvePushTags(cfg.Release.PushTags),
		Remote:   rf.Remote,
		Spinner:  spin,
	}

	tagger, err := vcs.Open(md.Root)
	switch {
	case err == nil:
		s.Tagger = tagger
	case errors.Is(err, vcs.ErrNotRepository):
		output.Warn("project is not in a git repository, tagging will be skipped", "root", md.Root)
	default:
		return nil, err
	}

	return s, nil
}
