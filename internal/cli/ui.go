package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions, numbers
	colorGreen  = lipgloss.Color("35")  // Green - success, strings
	colorYellow = lipgloss.Color("220") // Amber - warnings, booleans
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - keys
	colorPurple = lipgloss.Color("141") // Purple - named types
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCursor = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// Tree line styles, keyed by the json-* class suffix the renderer uses.
var (
	styleKey   = lipgloss.NewStyle().Foreground(colorBlue)
	styleIndex = lipgloss.NewStyle().Foreground(colorGray)
	styleSize  = lipgloss.NewStyle().Foreground(colorDim)

	valueStyles = map[string]lipgloss.Style{
		"string":    lipgloss.NewStyle().Foreground(colorGreen),
		"number":    lipgloss.NewStyle().Foreground(colorCyan),
		"boolean":   lipgloss.NewStyle().Foreground(colorYellow),
		"null":      lipgloss.NewStyle().Foreground(colorRed).Italic(true),
		"undefined": lipgloss.NewStyle().Foreground(colorRed).Italic(true),
		"object":    StyleDim,
		"array":     StyleDim,
	}
	styleNamed = lipgloss.NewStyle().Foreground(colorPurple)
)

// valueStyle returns the style of a leaf value of the given type label.
// Type labels other than the primitive and composite ones name a type.
func valueStyle(typ string) lipgloss.Style {
	if s, ok := valueStyles[strings.ToLower(typ)]; ok {
		return s
	}
	return styleNamed
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// printInfo prints an info/status message.
func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints tree statistics on a single line.
func printStats(w io.Writer, nodeCount int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount))}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}
