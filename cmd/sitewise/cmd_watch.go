// Package main implements the sitewise CLI.
// This file handles the watch command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/cmd/sitewise/ui"
	"sitewise/internal/audit"
	"sitewise/internal/report"
	"sitewise/internal/watch"
)

// watchCmd re-audits the site whenever its sources change
var watchCmd = &cobra.Command{
	Use:   "watch [path...]",
	Short: "Re-audit automatically when site files change",
	Long: `Watches the given paths for HTML changes and re-runs the full audit once a
change has settled. Each run rewrites the configured audit report file and
prints a one-line summary tagged with the run's correlation id.

Without arguments the configured templates directory is watched.
Press Ctrl+C to stop.`,
	RunE: runWatchCmd,
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Site.TemplatesDir}
	}

	auditor := audit.New(audit.Env{Domain: cfg.Site.Domain}, logger)
	dest := reportPath(cfg.Report.AuditFile)

	runOnce := func(runID string, changed []string) {
		rep, err := auditor.Run(paths...)
		if err != nil {
			logger.Error("audit run failed", zap.String("run_id", runID), zap.Error(err))
			fmt.Printf("[%s] audit failed: %v\n", runID, err)
			return
		}
		doc, err := renderDocument(cfg.Report.Format, "Accessibility Audit Report", report.RenderAudit(rep))
		if err == nil {
			err = os.WriteFile(dest, []byte(doc), 0644)
		}
		if err != nil {
			logger.Error("report write failed", zap.String("run_id", runID), zap.Error(err))
			fmt.Printf("[%s] report write failed: %v\n", runID, err)
			return
		}
		logger.Info("audit run complete",
			zap.String("run_id", runID),
			zap.Int("changed", len(changed)),
			zap.Int("issues", rep.Issues))
		fmt.Printf("[%s] %s\n", runID, ui.SummaryRow(rep))
	}

	watcher, err := watch.New(paths, runOnce, watch.Options{
		Debounce: cfg.DebounceInterval(),
		Sweep:    cfg.SweepInterval(),
	}, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	fmt.Println("👀 Watching for changes")
	fmt.Println(strings.Repeat("─", 50))
	for _, p := range watcher.WatchList() {
		fmt.Printf("  %s\n", p)
	}
	fmt.Printf("Report: %s\n", dest)
	fmt.Println("Press Ctrl+C to stop.")
	fmt.Println()

	// Audit once up front so the report reflects the current tree.
	runOnce(uuid.NewString()[:8], nil)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nStopping watcher")
	watcher.Stop()

	stats := watcher.GetStats()
	fmt.Printf("Saw %d created, %d modified, %d deleted; triggered %d runs\n",
		stats.FilesCreated, stats.FilesModified, stats.FilesDeleted, stats.RunsTriggered)
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
