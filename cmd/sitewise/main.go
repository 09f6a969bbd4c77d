package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/internal/config"
	"sitewise/internal/logging"
	"sitewise/internal/report"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workspace  string

	// Loaded in PersistentPreRunE
	logger *zap.Logger
	cfg    *config.Config

	// exitCode is the status for a run that completed without a fatal
	// error. The audit command sets it to 1 when issues were found.
	exitCode int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sitewise",
	Short: "sitewise - accessibility, SEO and performance checks for static sites",
	Long: `sitewise runs release checks over a static website: accessibility and SEO
rules on the HTML, minification and gzip coverage on the assets, and feature
probes on the templates. Every check produces a reproducible report.

Commands:
  audit     Run the accessibility/SEO rule set over HTML files
  perf      Measure asset sizes and scan for performance features
  optimize  Minify and gzip stylesheets and scripts
  watch     Re-audit automatically when site files change
  view      Browse the reports in an interactive terminal viewer`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration; a missing file falls back to defaults
		path := configPath
		if !filepath.IsAbs(path) && workspace != "" {
			path = filepath.Join(workspace, path)
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		cfg = cfg.Resolve(siteRoot())
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sitewise.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Site root directory (default: current)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	os.Exit(exitCode)
}

// siteRoot returns the directory the configured site paths resolve against.
func siteRoot() string {
	if workspace != "" {
		return workspace
	}
	cwd, _ := os.Getwd()
	return cwd
}

// reportFormat picks the per-command format flag when set, the configured
// default otherwise.
func reportFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Report.Format
}

// renderDocument converts a markdown report into the requested output format.
func renderDocument(format, title, markdown string) (string, error) {
	switch format {
	case "markdown":
		return markdown, nil
	case "html":
		return report.RenderHTML(title, markdown)
	case "term":
		return report.RenderTerm(markdown), nil
	default:
		return "", fmt.Errorf("invalid report format: %s (valid: %v)", format, config.ValidFormats)
	}
}

// emitReport writes the rendered document to path, or to stdout when path
// is empty or "-".
func emitReport(doc, path string) error {
	if path == "" || path == "-" {
		fmt.Print(doc)
		return nil
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// reportPath resolves a configured report destination against the site root.
// Paths given on the command line are used as typed.
func reportPath(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(siteRoot(), p)
}
