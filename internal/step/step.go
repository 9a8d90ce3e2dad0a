// Package step records the outcome of orchestrated steps.
package step

import (
	"errors"
	"fmt"
	"strings"
	"time"

	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
)

// Status is the outcome of a step.
type Status string

const (
	OK      Status = output.StatusOK
	Warn    Status = output.StatusWarn
	Failed  Status = output.StatusFailed
	Skipped Status = output.StatusSkipped
)

// Result is the outcome of one step.
type Result struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
	// Detail is a short note shown in summaries, e.g. "dist not found".
	Detail string
}

// Message returns the summary text for the result.
func (r Result) Message() string {
	if r.Detail != "" {
		return r.Detail
	}
	if r.Err != nil {
		return firstLine(r.Err.Error())
	}
	return ""
}

// Report aggregates results in execution order.
type Report struct {
	Results []Result
}

// Add appends r.
func (rep *Report) Add(r Result) {
	rep.Results = append(rep.Results, r)
}

// Failed reports whether any step failed.
func (rep *Report) Failed() bool {
	for _, r := range rep.Results {
		if r.Status == Failed {
			return true
		}
	}
	return false
}

// Warned reports whether any step finished with a warning.
func (rep *Report) Warned() bool {
	for _, r := range rep.Results {
		if r.Status == Warn {
			return true
		}
	}
	return false
}

// Err joins the errors of failed steps. Each matches errors.ErrStep.
// Returns nil when no step failed.
func (rep *Report) Err() error {
	var errs []error
	for _, r := range rep.Results {
		if r.Status != Failed {
			continue
		}
		cause := r.Err
		if cause == nil {
			cause = fmt.Errorf("step failed")
		}
		errs = append(errs, oerrors.WrapStep(r.Name, cause))
	}
	return errors.Join(errs...)
}

// Get returns the result named name.
func (rep *Report) Get(name string) (Result, bool) {
	for _, r := range rep.Results {
		if r.Name == name {
			return r, true
		}
	}
	return Result{}, false
}

// Rows converts the report into summary table rows.
func (rep *Report) Rows() []output.StepRow {
	rows := make([]output.StepRow, 0, len(rep.Results))
	for _, r := range rep.Results {
		d := ""
		if r.Status != Skipped {
			d = r.Duration.Round(time.Millisecond).String()
		}
		rows = append(rows, output.StepRow{
			Name:     r.Name,
			Status:   string(r.Status),
			Duration: d,
			Message:  r.Message(),
		})
	}
	return rows
}

// Timed runs fn and returns its result with Duration filled in.
func Timed(name string, fn func() Result) Result {
	start := time.Now()
	r := fn()
	r.Name = name
	r.Duration = time.Since(start)
	return r
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
