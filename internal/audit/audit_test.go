package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Home</title>
<meta name="description" content="Portfolio">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body><h1>Welcome</h1></body>
</html>`

const brokenPage = `<!DOCTYPE html>
<html>
<head><title>Gallery</title></head>
<body><h1>Gallery</h1><img src="photo.jpg"></body>
</html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAuditorRun(t *testing.T) {
	dir, err := os.MkdirTemp("", "audit-run-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "a.html", brokenPage)
	writeFile(t, dir, "b.html", cleanPage)
	writeFile(t, dir, "notes.txt", "not html")

	a := New(Env{Domain: "example.com"}, nil)
	report, err := a.Run(dir)
	require.NoError(t, err)

	// a.html: missing lang, missing viewport, missing alt. b.html is clean.
	assert.Equal(t, 3, report.Issues)
	assert.True(t, report.HasIssues())
	assert.Equal(t, report.Passed+report.Warnings+report.Issues, report.TotalChecks)

	// Findings accumulate in lexical file order, so a.html leads.
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, "Missing lang attribute on <html> tag", report.Findings[0].Message)

	// Both pages contribute their own title pass.
	assert.Equal(t, 2, countMessage(report.Findings, "Page title present"))
}

func TestAuditorRunDeterministic(t *testing.T) {
	dir, err := os.MkdirTemp("", "audit-det-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeFile(t, dir, "index.html", brokenPage)

	a := New(Env{}, nil)
	first, err := a.Run(dir)
	require.NoError(t, err)
	second, err := a.Run(dir)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ between identical runs (-first +second):\n%s", diff)
	}
}

func TestAuditorRunMissingPath(t *testing.T) {
	a := New(Env{}, nil)
	_, err := a.Run(filepath.Join(os.TempDir(), "does-not-exist-anywhere"))
	require.Error(t, err)

	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestAuditorExplicitFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "audit-file-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// Extension filtering applies to directory walks only; explicit
	// arguments are audited as given.
	page := writeFile(t, dir, "page.htm", cleanPage)

	a := New(Env{}, nil)
	report, err := a.Run(page)
	require.NoError(t, err)
	assert.False(t, report.HasIssues())
	assert.Equal(t, 1, countMessage(report.Findings, "HTML lang attribute present"))
}

func TestAuditReader(t *testing.T) {
	a := New(Env{}, nil)
	findings, err := a.AuditReader(strings.NewReader(cleanPage), "mem.html")
	require.NoError(t, err)
	assert.Equal(t, 1, countMessage(findings, "Exactly one H1 tag found"))
}

func TestAuditFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "audit-single-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeFile(t, dir, "index.html", brokenPage)

	a := New(Env{}, nil)
	findings, err := a.AuditFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, countMessage(findings, "Image missing alt attribute"))
}
