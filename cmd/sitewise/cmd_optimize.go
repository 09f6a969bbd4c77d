// Package main implements the sitewise CLI.
// This file handles the optimize command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/internal/assets"
	"sitewise/internal/optimize"
	"sitewise/internal/report"
)

var optimizeOutput string

// optimizeCmd minifies and gzips the static assets
var optimizeCmd = &cobra.Command{
	Use:   "optimize [dir]",
	Short: "Minify and gzip stylesheets and scripts",
	Long: `Minifies every *.css and *.js file under the static root into name.min.ext
and gzips each minified artifact to name.min.ext.gz. Already minified files
are skipped. The directory argument overrides the configured static root.

An optimization summary report is written afterwards; the destination
defaults to the configured report file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimizeCmd,
}

func runOptimizeCmd(cmd *cobra.Command, args []string) error {
	staticDir := cfg.Site.StaticDir
	if len(args) > 0 {
		staticDir = args[0]
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	fmt.Println("🚀 Starting site optimization...")
	fmt.Println()

	results, err := optimize.New(staticDir, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	printOptimizeResults(results)

	logger.Info("optimization complete",
		zap.Int("files", len(results)),
		zap.String("static_dir", staticDir))

	fmt.Println()
	fmt.Println("Generating performance report...")

	// Re-collect so the totals include the fresh artifacts.
	snap, err := assets.NewCollector(staticDir, logger).Collect()
	if err != nil {
		return err
	}
	doc := report.RenderOptimize(report.OptimizeData{Results: results, Totals: snap.Totals})
	out := optimizeOutput
	if out == "" {
		out = reportPath(cfg.Report.OptimizeFile)
	}
	if err := emitReport(doc, out); err != nil {
		return err
	}
	if out != "-" {
		fmt.Printf("  Performance report saved to %s\n", out)
	}

	fmt.Println()
	fmt.Println("✅ Optimization complete!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Test the website with minified files")
	fmt.Println("2. Run Lighthouse audit for performance metrics")
	fmt.Println("3. Configure server to serve .gz files when available")
	fmt.Println("4. Monitor Core Web Vitals in production")
	return nil
}

// printOptimizeResults prints the per-file size progression, grouped by
// source type in the order the optimizer processed them.
func printOptimizeResults(results []optimize.Result) {
	if len(results) == 0 {
		fmt.Println("No css/js sources found to optimize")
		return
	}
	lastExt := ""
	for _, r := range results {
		ext := filepath.Ext(r.Path)
		if ext != lastExt {
			if lastExt != "" {
				fmt.Println()
			}
			switch ext {
			case ".css":
				fmt.Println("Optimizing CSS files...")
			case ".js":
				fmt.Println("Optimizing JavaScript files...")
			}
			lastExt = ext
		}
		fmt.Printf("  Processing %s\n", r.Name)
		fmt.Printf("    Minified: %d chars → %d chars (%.1f%% reduction)\n",
			r.Original, r.Minified, r.MinifyReduction())
		fmt.Printf("  Compressed: %d bytes → %d bytes (%.1f%% reduction)\n",
			r.Minified, r.Gzipped, r.GzipReduction())
	}
}

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "", "Report destination, \"-\" for stdout (default: from config)")
	rootCmd.AddCommand(optimizeCmd)
}
