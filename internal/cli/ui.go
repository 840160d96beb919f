package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Primes use the same orange as the rendered trees.
var (
	colorCyan  = lipgloss.Color("36")  // actions
	colorGreen = lipgloss.Color("35")  // success
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // commands
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
	colorPrime = lipgloss.Color("214") // primes
)

var (
	// StyleHighlight marks values the user acts on, such as addresses.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim is for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue is for file names and other data.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// statusOut receives human-facing status lines. Artifacts written to stdout
// with "-o -" bypass it.
var statusOut io.Writer = os.Stdout

func status(icon lipgloss.Style, mark, format string, args ...any) {
	fmt.Fprintln(statusOut, icon.Render(mark)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(styleIconSuccess, iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(styleIconError, iconError, format, args...) }
func printInfo(format string, args ...any)    { status(styleIconInfo, iconInfo, format, args...) }

// printDetail prints an indented dim line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats summarises a render: "10 nodes · 9 edges · 4 primes · fresh".
func printStats(nodeCount, edgeCount, primeCount int, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
		StyleDim.Render(fmt.Sprintf("%d primes", primeCount)),
	}
	if cached {
		parts = append(parts, styleCached.Render(iconCached))
	} else {
		parts = append(parts, styleComputed.Render(iconFresh))
	}
	fmt.Fprintln(statusOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(description, cmd string) {
	fmt.Fprintln(statusOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
