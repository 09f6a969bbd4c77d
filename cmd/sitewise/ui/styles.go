// Package ui provides the visual styling for the sitewise interactive CLI.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sitewise/internal/audit"
)

// Severity palette, shared by the viewer and the console summary rows.
var (
	PassColor  = lipgloss.Color("#8BC34A") // Lime Green
	WarnColor  = lipgloss.Color("#FFC107") // Yellow
	IssueColor = lipgloss.Color("#e53935") // Red
	InfoColor  = lipgloss.Color("#2196F3") // Blue

	ChromeForeground = lipgloss.Color("#f2f2f2") // hsl(0, 0%, 95%)
	ChromeBackground = lipgloss.Color("#101F38") // Dark Blue - hsl(220, 58%, 14%)
	MutedForeground  = lipgloss.Color("#6c7a91") // Muted slate
)

// Styles holds all the styled components
type Styles struct {
	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Severity
	Pass  lipgloss.Style
	Warn  lipgloss.Style
	Issue lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(ChromeBackground).
			Foreground(ChromeForeground).
			Padding(0, 1).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(MutedForeground).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(PassColor).
			Bold(true).
			Underline(true),

		TabInactive: lipgloss.NewStyle().
			Foreground(MutedForeground),

		Pass:  lipgloss.NewStyle().Foreground(PassColor),
		Warn:  lipgloss.NewStyle().Foreground(WarnColor),
		Issue: lipgloss.NewStyle().Foreground(IssueColor),
	}
}

// SummaryRow renders the one-line severity tally for an audit report.
func SummaryRow(r audit.Report) string {
	s := NewStyles()
	return strings.Join([]string{
		s.Pass.Render(fmt.Sprintf("✅ %d", r.Passed)),
		s.Warn.Render(fmt.Sprintf("⚠️ %d", r.Warnings)),
		s.Issue.Render(fmt.Sprintf("❌ %d", r.Issues)),
	}, "  ")
}
