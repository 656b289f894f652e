package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: module names, paths.
	ColorCyan = lipgloss.Color("14")

	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for changed and shadowed modules.
	ColorYellow = lipgloss.Color("220")

	colorRed = lipgloss.Color("196")

	colorBoldRed = lipgloss.Color("204")

	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module names, artifact paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Module status constants.
const (
	StatusRegistered = "registered"
	StatusShadowed   = "shadowed"
	StatusAdded      = "added"
	StatusRemoved    = "removed"
	StatusChanged    = "changed"
	StatusUnchanged  = "unchanged"
	StatusValid      = "valid"
	statusFailed     = "failed"
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRegistered, StatusAdded, StatusValid:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusShadowed, StatusChanged:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(colorRed)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth keeps status words aligned for typical module names.
const minModuleColumnWidth = 40

// FormatModuleLine renders a module name with a right-aligned, color-coded
// status suffix: m:<name>  <status>.
func FormatModuleLine(name, status string) string {
	padding := minModuleColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("m:") + StyleNoun.Render(name) +
		strings.Repeat(" ", padding) + statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth aligns the detail column of vet check lines.
const vetLabelWidth = 28

// FormatVetCheck renders a passed validation check with an optional
// right-hand detail, such as the file that was checked.
func FormatVetCheck(label, detail string) string {
	if detail == "" {
		return FormatCheckmark(label)
	}
	return FormatCheckmark(fmt.Sprintf("%-*s", vetLabelWidth, label)) + StyleNoun.Render(detail)
}
