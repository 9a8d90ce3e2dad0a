package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI.
var (
	// ColorCyan is used for identifiable nouns: step names, paths, versions.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "ok" step status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "warn" step status.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for the "failed" step status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (step names, paths, versions).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles status lines announcing what is about to run.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Step status strings, shared with the step package.
const (
	StatusOK      = "ok"
	StatusWarn    = "warn"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// statusStyle returns the lipgloss style for a given step status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusWarn:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minStepColumnWidth is the minimum width of the step column so status
// words line up.
const minStepColumnWidth = 24

// FormatStepLine renders a step name with a right-aligned, color-coded status.
//
// Format: s:<name>  <status>
func FormatStepLine(name, status string) string {
	padding := minStepColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("s:") + StyleNoun.Render(name) + strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}
