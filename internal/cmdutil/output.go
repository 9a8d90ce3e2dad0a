package cmdutil

import (
	"errors"
	"fmt"
	"strings"

	oerrors "github.com/opmodel/relkit/internal/errors"
	"github.com/opmodel/relkit/internal/output"
	"github.com/opmodel/relkit/internal/step"
)

// PrintError prints a command error in a user-friendly format. Structured
// DetailErrors are printed verbatim after a short summary line.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Type))
		output.Details(strings.TrimRight(detail.Error(), "\n"))
		return
	}
	output.Error(msg, "error", err)
}

// PrintReport prints the step summary table, followed by one error line per
// failed step. Single-step reports only get the table in verbose mode.
func PrintReport(rep *step.Report, verbose bool) {
	if rep == nil || len(rep.Results) == 0 {
		return
	}
	if len(rep.Results) > 1 || verbose {
		output.Println(output.RenderStepTable(rep.Rows()))
	}
	for _, r := range rep.Results {
		if r.Status == step.Failed && r.Err != nil {
			output.StepLogger(r.Name).Error("step failed", "error", r.Err)
		}
	}
}

// ExitError converts err into an ExitError already reported to the user.
func ExitError(err error) *oerrors.ExitError {
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}
