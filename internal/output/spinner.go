package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title    string
	disabled bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithoutSpinner runs the action inline even on a terminal. Used when the
// action streams child process output that the spinner would overwrite.
func WithoutSpinner(disabled bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.disabled = disabled
	}
}

// RunWithSpinner executes an action with a spinner and returns the action's error.
func RunWithSpinner(ctx context.Context, action func(context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.disabled || !IsTTY() {
		return action(ctx)
	}

	var actionErr error
	spinnerErr := spinner.New().
		Title(cfg.title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()

	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return actionErr
}
