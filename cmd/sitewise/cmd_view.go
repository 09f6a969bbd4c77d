// Package main implements the sitewise CLI.
// This file handles the view command.
package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sitewise/cmd/sitewise/ui"
	"sitewise/internal/assets"
	"sitewise/internal/audit"
	"sitewise/internal/features"
	"sitewise/internal/report"
)

// viewCmd browses the reports interactively
var viewCmd = &cobra.Command{
	Use:   "view [path]",
	Short: "Browse audit and performance reports interactively",
	Long: `Runs the audit and the performance scan, then opens both reports in an
interactive terminal viewer. Tab switches between the reports, j/k and the
arrow keys scroll, q quits.

The path argument overrides the audited templates directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViewCmd,
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	auditPath := cfg.Site.TemplatesDir
	if len(args) > 0 {
		auditPath = args[0]
	}

	auditor := audit.New(audit.Env{Domain: cfg.Site.Domain}, logger)
	rep, err := auditor.Run(auditPath)
	if err != nil {
		return err
	}

	snap, err := assets.NewCollector(cfg.Site.StaticDir, logger).Collect()
	if err != nil {
		return err
	}
	feats := features.NewScanner(cfg.Site.BaseTemplate, cfg.Site.Stylesheet, cfg.Site.StaticDir, logger).Scan()
	perfData := report.PerfData{
		GeneratedAt: time.Now(),
		Snapshot:    snap,
		Features:    feats,
	}

	model := ui.NewViewer(rep, report.RenderAudit(rep), report.RenderPerf(perfData))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
