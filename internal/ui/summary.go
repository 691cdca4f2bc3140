package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/oledmon/internal/util"
)

// HostStatus is one row of the host summary.
type HostStatus struct {
	Address string
	Label   string
	Alive   bool
}

// SummaryRenderer formats host summaries for terminal display.
type SummaryRenderer struct {
	upStyle      lipgloss.Style
	downStyle    lipgloss.Style
	addressStyle lipgloss.Style
	mutedStyle   lipgloss.Style
}

// NewSummaryRenderer creates a new summary renderer with default styles.
func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{
		upStyle:      lipgloss.NewStyle().Foreground(ColorSuccess),
		downStyle:    lipgloss.NewStyle().Foreground(ColorError),
		addressStyle: lipgloss.NewStyle().Foreground(ColorInfo),
		mutedStyle:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// RenderHostSummary lists hosts with their status and a trailing page count line.
func RenderHostSummary(hosts []HostStatus, pages int) string {
	return NewSummaryRenderer().Render(hosts, pages)
}

// Render generates the formatted summary string.
func (r *SummaryRenderer) Render(hosts []HostStatus, pages int) string {
	width := 0
	for _, h := range hosts {
		width = max(width, len(h.Address))
	}

	var sb strings.Builder
	for _, h := range hosts {
		symbol := r.upStyle.Render(SymbolUp)
		if !h.Alive {
			symbol = r.downStyle.Render(SymbolDown)
		}
		sb.WriteString(symbol)
		sb.WriteString(" ")
		sb.WriteString(r.addressStyle.Render(fmt.Sprintf("%-*s", width, h.Address)))
		sb.WriteString("  ")
		sb.WriteString(h.Label)
		sb.WriteString("\n")
	}

	sb.WriteString(r.mutedStyle.Render(fmt.Sprintf("Monitoring %d %s on %d %s",
		len(hosts), util.Pluralize(len(hosts), "host", "hosts"),
		pages, util.Pluralize(pages, "screen", "screens"))))
	sb.WriteString("\n")

	return sb.String()
}

// RenderError formats a fatal error for stderr.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorError).Render(err.Error())
}
