// Package lifecycle runs the custom packaging commands: resource compilation,
// install, develop, and upload.
package lifecycle

import (
	"context"

	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/step"
)

// Step is one unit of work in an orchestrated command.
type Step struct {
	Name string
	Run  func(ctx context.Context) step.Result
}

// Orchestrator runs pre-hooks, then the base action, then post-hooks.
// Pre-hook results are recorded but never abort the run. A failed base
// action skips the post-hooks.
type Orchestrator struct {
	// Banner is printed before anything runs.
	Banner string
	Pre    []Step
	Base   Step
	Post   []Step
}

// Run executes the steps in order. The returned error is the report's
// aggregated error and matches errors.ErrStep when a step failed.
func (o *Orchestrator) Run(ctx context.Context) (*step.Report, error) {
	rep := &step.Report{}

	if o.Banner != "" {
		output.Println(o.Banner)
	}

	for _, s := range o.Pre {
		rep.Add(runStep(ctx, s))
	}

	base := runStep(ctx, o.Base)
	rep.Add(base)

	for _, s := range o.Post {
		if base.Status == step.Failed {
			rep.Add(step.Result{Name: s.Name, Status: step.Skipped, Detail: o.Base.Name + " failed"})
			continue
		}
		rep.Add(runStep(ctx, s))
	}

	return rep, rep.Err()
}

func runStep(ctx context.Context, s Step) step.Result {
	if err := ctx.Err(); err != nil {
		return step.Result{Name: s.Name, Status: step.Failed, Err: err}
	}
	res := step.Timed(s.Name, func() step.Result { return s.Run(ctx) })
	output.StepLogger(s.Name).Debug("step finished", "status", res.Status, "duration", res.Duration)
	return res
}
