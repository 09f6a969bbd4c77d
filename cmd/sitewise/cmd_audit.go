// Package main implements the sitewise CLI.
// This file handles the audit command.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/cmd/sitewise/ui"
	"sitewise/internal/audit"
	"sitewise/internal/report"
)

var (
	auditOutput string
	auditFormat string
)

// auditCmd runs the accessibility/SEO rule set
var auditCmd = &cobra.Command{
	Use:   "audit [path...]",
	Short: "Run accessibility and SEO checks over HTML files",
	Long: `Runs the fixed accessibility and SEO rule set over the given HTML files.
Directory arguments are walked recursively for *.html files in lexical order.
Without arguments the configured templates directory is audited.

The exit status is 1 when at least one issue-severity finding exists.
Warnings never affect the exit status.`,
	RunE: runAuditCmd,
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Site.TemplatesDir}
	}

	auditor := audit.New(audit.Env{Domain: cfg.Site.Domain}, logger)
	rep, err := auditor.Run(paths...)
	if err != nil {
		return err
	}

	logger.Info("audit complete",
		zap.Int("total_checks", rep.TotalChecks),
		zap.Int("passed", rep.Passed),
		zap.Int("warnings", rep.Warnings),
		zap.Int("issues", rep.Issues))

	doc, err := renderDocument(reportFormat(auditFormat), "Accessibility Audit Report", report.RenderAudit(rep))
	if err != nil {
		return err
	}
	if err := emitReport(doc, auditOutput); err != nil {
		return err
	}

	// When the report went to a file, print a console summary instead.
	if auditOutput != "" && auditOutput != "-" {
		fmt.Println("🔍 Accessibility & SEO Audit")
		fmt.Println(strings.Repeat("─", 50))
		fmt.Printf("  Checked %d rule results across %v\n", rep.TotalChecks, paths)
		fmt.Println("  " + ui.SummaryRow(rep))
		fmt.Printf("  Report saved to %s\n", auditOutput)
	}

	if rep.HasIssues() {
		exitCode = 1
	}
	return nil
}

func init() {
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Write the report to a file (default: stdout)")
	auditCmd.Flags().StringVar(&auditFormat, "format", "", "Report format: markdown, html or term (default: from config)")
	rootCmd.AddCommand(auditCmd)
}
