package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	errs "github.com/matzehuels/cargodot/pkg/errors"
	"github.com/matzehuels/cargodot/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSummary prints the output path and graph size of a finished run.
func printSummary(w io.Writer, r *pipeline.Result) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" Dependency graph written")
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(r.Output))

	line := "  " + StyleDim.Render(fmt.Sprintf("%d nodes", r.Stats.NodeCount))
	line += StyleDim.Render(" · ")
	line += StyleDim.Render(fmt.Sprintf("%d edges", r.Stats.EdgeCount))
	line += StyleDim.Render(" · ")
	line += StyleDim.Render(fmt.Sprintf("%d bytes", r.Bytes))
	fmt.Fprintln(w, line)
}

// PrintError prints err as a one-line user-facing message.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errs.UserMessage(err))
}
