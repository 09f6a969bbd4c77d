// Package main implements the sitewise CLI.
// This file handles the perf command.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/internal/assets"
	"sitewise/internal/features"
	"sitewise/internal/report"
)

var (
	perfOutput string
	perfFormat string
)

// perfCmd measures asset sizes and scans for performance features
var perfCmd = &cobra.Command{
	Use:   "perf [dir]",
	Short: "Measure asset sizes and scan for performance features",
	Long: `Collects minified and gzipped size metrics for the static assets and probes
the base template and stylesheet for accessibility, SEO and performance
features. The directory argument overrides the configured static root.

This command only measures; it never modifies any file. Run 'sitewise
optimize' to produce the minified and gzipped artifacts it looks for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPerfCmd,
}

func runPerfCmd(cmd *cobra.Command, args []string) error {
	staticDir := cfg.Site.StaticDir
	if len(args) > 0 {
		staticDir = args[0]
	}

	snap, err := assets.NewCollector(staticDir, logger).Collect()
	if err != nil {
		return err
	}
	feats := features.NewScanner(cfg.Site.BaseTemplate, cfg.Site.Stylesheet, staticDir, logger).Scan()

	data := report.PerfData{
		GeneratedAt: time.Now(),
		Snapshot:    snap,
		Features:    feats,
	}

	logger.Info("performance scan complete",
		zap.Int("total_checks", data.TotalChecks()),
		zap.Int("passed", data.PassedChecks()),
		zap.Float64("success_rate", data.SuccessRate()))

	doc, err := renderDocument(reportFormat(perfFormat), "Portfolio Website Performance Test Report", report.RenderPerf(data))
	if err != nil {
		return err
	}
	if err := emitReport(doc, perfOutput); err != nil {
		return err
	}

	if perfOutput != "" && perfOutput != "-" {
		fmt.Println("🧪 Performance Test")
		fmt.Println(strings.Repeat("─", 50))
		fmt.Printf("  Success rate: %.1f%% (%d/%d checks)\n", data.SuccessRate(), data.PassedChecks(), data.TotalChecks())
		fmt.Printf("  Static assets: %d files, %.1f KB\n", snap.Totals.Files, snap.Totals.KB())
		fmt.Printf("  Report saved to %s\n", perfOutput)
	}
	return nil
}

func init() {
	perfCmd.Flags().StringVarP(&perfOutput, "output", "o", "", "Write the report to a file (default: stdout)")
	perfCmd.Flags().StringVar(&perfFormat, "format", "", "Report format: markdown, html or term (default: from config)")
	rootCmd.AddCommand(perfCmd)
}
