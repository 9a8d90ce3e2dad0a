// Package cmdutil provides shared command utilities for the lifecycle
// commands. It centralizes flag groups, environment assembly and report
// printing.
package cmdutil

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/opmodel/relkit/internal/config"
)

// ToolFlags holds tool overrides common to commands that run external
// tools (build-resources, install, develop, upload).
type ToolFlags struct {
	Python  string
	RCC     string
	Twine   string
	Timeout time.Duration
}

// AddTo registers the tool flags on the given cobra command.
func (f *ToolFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Python, "python", "",
		"Python interpreter (env: RELKIT_TOOLS_PYTHON)")
	cmd.Flags().StringVar(&f.RCC, "rcc", "",
		"Qt resource compiler (env: RELKIT_TOOLS_RCC)")
	cmd.Flags().StringVar(&f.Twine, "twine", "",
		"Upload tool (env: RELKIT_TOOLS_TWINE)")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 0,
		"Per-step timeout for external tools (0 means none)")
}

// Resolve applies flag > env > config > default precedence to the tools.
func (f *ToolFlags) Resolve(cfg *config.Config) config.ResolvedTools {
	return config.ResolveTools(config.ToolFlags{
		Python: f.Python,
		RCC:    f.RCC,
		Twine:  f.Twine,
	}, cfg)
}

// ReleaseFlags holds flags for the upload workflow.
type ReleaseFlags struct {
	Strict   bool
	DryRun   bool
	PushTags bool
	Remote   string

	// PushTagsSet marks --push-tags as given explicitly. AddTo wires it to
	// the command's flag set; callers building ReleaseFlags by hand set it.
	PushTagsSet bool

	cmd *cobra.Command
}

// AddTo registers the release flags on the given cobra command.
func (f *ReleaseFlags) AddTo(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Stop at the first failed step")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Print the release plan without running it")
	cmd.Flags().BoolVar(&f.PushTags, "push-tags", false,
		"Push tags to the remote after tagging (config: release.pushTags)")
	cmd.Flags().StringVar(&f.Remote, "remote", "",
		"Git remote to push tags to (default: from config)")
}

// OutputFlags holds the structured output format flag.
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "yaml",
		"Output format: yaml, json")
}

// ResolvePushTags returns --push-tags when it was given explicitly
// (including --push-tags=false), otherwise configured.
func (f *ReleaseFlags) ResolvePushTags(configured bool) bool {
	if f.PushTagsSet || (f.cmd != nil && f.cmd.Flags().Changed("push-tags")) {
		return f.PushTags
	}
	return configured
}
