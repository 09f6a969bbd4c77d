package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitewise/internal/config"
)

const cleanTestPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="Test page for the command tests">
<title>Home</title>
</head>
<body><h1>Welcome</h1><p>Hello.</p></body>
</html>`

const brokenTestPage = `<!DOCTYPE html>
<html>
<head></head>
<body><p>No metadata at all.</p></body>
</html>`

// setupSite builds a minimal site tree in a temp workspace.
func setupSite(t *testing.T, page string) string {
	t.Helper()
	ws := t.TempDir()

	tpl := filepath.Join(ws, "templates")
	if err := os.MkdirAll(tpl, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tpl, "index.html"), []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	cssDir := filepath.Join(ws, "static", "css")
	if err := os.MkdirAll(cssDir, 0755); err != nil {
		t.Fatal(err)
	}
	css := "body {\n  color: #101f38;\n  background: #ffffff;\n}\n"
	if err := os.WriteFile(filepath.Join(cssDir, "styles.css"), []byte(css), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(ws, "static", "js"), 0755); err != nil {
		t.Fatal(err)
	}

	return ws
}

// setGlobals wires the package globals the way PersistentPreRunE would.
func setGlobals(t *testing.T, ws string) {
	t.Helper()
	logger = zap.NewNop()
	workspace = ws
	cfg = config.DefaultConfig().Resolve(ws)
	t.Cleanup(func() {
		workspace = ""
		cfg = nil
		exitCode = 0
	})
}

func TestRenderDocument(t *testing.T) {
	md := "# Title\n\nbody text\n"

	out, err := renderDocument("markdown", "Title", md)
	if err != nil {
		t.Fatalf("markdown render failed: %v", err)
	}
	if out != md {
		t.Errorf("markdown format should pass through unchanged")
	}

	out, err = renderDocument("html", "Title", md)
	if err != nil {
		t.Fatalf("html render failed: %v", err)
	}
	if !strings.Contains(out, "<!DOCTYPE html>") || !strings.Contains(out, "body text") {
		t.Errorf("html output missing page shell or content: %q", out)
	}

	out, err = renderDocument("term", "Title", md)
	if err != nil {
		t.Fatalf("term render failed: %v", err)
	}
	if !strings.Contains(out, "body text") {
		t.Errorf("term output missing content")
	}

	if _, err := renderDocument("pdf", "Title", md); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestEmitReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	if err := emitReport("# Report\n", path); err != nil {
		t.Fatalf("emitReport failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Report\n" {
		t.Errorf("written report differs: %q", data)
	}
}

func TestReportPath(t *testing.T) {
	ws := t.TempDir()
	setGlobals(t, ws)

	if got := reportPath("report.md"); got != filepath.Join(ws, "report.md") {
		t.Errorf("relative path not resolved against workspace: %q", got)
	}
	if got := reportPath("/tmp/abs.md"); got != "/tmp/abs.md" {
		t.Errorf("absolute path should pass through: %q", got)
	}
	if got := reportPath("-"); got != "-" {
		t.Errorf("stdout marker should pass through: %q", got)
	}
}

func TestRunAuditCmdBrokenSite(t *testing.T) {
	ws := setupSite(t, brokenTestPage)
	setGlobals(t, ws)

	out := filepath.Join(ws, "audit.md")
	auditOutput = out
	t.Cleanup(func() { auditOutput = ""; auditFormat = "" })

	if err := runAuditCmd(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runAuditCmd failed: %v", err)
	}
	if exitCode != 1 {
		t.Errorf("expected exit code 1 for a page with issues, got %d", exitCode)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Missing lang attribute on <html> tag") {
		t.Errorf("report missing expected finding")
	}
}

func TestRunAuditCmdCleanSite(t *testing.T) {
	ws := setupSite(t, cleanTestPage)
	setGlobals(t, ws)

	out := filepath.Join(ws, "audit.md")
	auditOutput = out
	t.Cleanup(func() { auditOutput = ""; auditFormat = "" })

	if err := runAuditCmd(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runAuditCmd failed: %v", err)
	}
	if exitCode != 0 {
		t.Errorf("expected exit code 0 for a clean page, got %d", exitCode)
	}
}

func TestRunAuditCmdMissingPath(t *testing.T) {
	ws := setupSite(t, cleanTestPage)
	setGlobals(t, ws)

	err := runAuditCmd(&cobra.Command{}, []string{filepath.Join(ws, "no-such-dir")})
	if err == nil {
		t.Fatal("expected error for missing audit path")
	}
}

func TestRunPerfCmd(t *testing.T) {
	ws := setupSite(t, cleanTestPage)
	setGlobals(t, ws)

	out := filepath.Join(ws, "perf.md")
	perfOutput = out
	t.Cleanup(func() { perfOutput = ""; perfFormat = "" })

	if err := runPerfCmd(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runPerfCmd failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Portfolio Website Performance Test Report") {
		t.Errorf("perf report missing title")
	}
	if !strings.Contains(string(data), "styles.css") {
		t.Errorf("perf report missing asset entry")
	}
}

func TestRunOptimizeCmd(t *testing.T) {
	ws := setupSite(t, cleanTestPage)
	setGlobals(t, ws)

	out := filepath.Join(ws, "optimize.md")
	optimizeOutput = out
	t.Cleanup(func() { optimizeOutput = "" })

	if err := runOptimizeCmd(&cobra.Command{}, nil); err != nil {
		t.Fatalf("runOptimizeCmd failed: %v", err)
	}

	minified := filepath.Join(ws, "static", "css", "styles.min.css")
	if _, err := os.Stat(minified); err != nil {
		t.Errorf("minified artifact not written: %v", err)
	}
	if _, err := os.Stat(minified + ".gz"); err != nil {
		t.Errorf("gzipped artifact not written: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Portfolio Website Performance Report") {
		t.Errorf("optimization report missing title")
	}
}
