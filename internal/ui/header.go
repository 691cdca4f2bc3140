package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	Mode    string // Dashboard mode (e.g., "ping monitor")
	Display string // Display driver in use
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 40

// RenderHeader renders the startup banner.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var output strings.Builder

	output.WriteString(titleStyle.Render("oledmon"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	output.WriteString("\n")

	var details []string
	if info.Mode != "" {
		details = append(details, info.Mode)
	}
	if info.Display != "" {
		details = append(details, "display: "+info.Display)
	}
	if len(details) > 0 {
		output.WriteString(mutedStyle.Render(strings.Join(details, " · ")))
		output.WriteString("\n")
	}

	output.WriteString(mutedStyle.Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the styled header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}
