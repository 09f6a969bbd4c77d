package optimize

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewise/internal/audit"
)

const sampleCSS = `/* header styles */
body {
    color: #111111;
    background-color: #ffffff;
}

h1 {
    margin: 0 0 1rem 0;
}
`

const sampleJS = `// toggle the nav
function toggleNav() {
    var nav = document.querySelector("nav");
    nav.classList.toggle("open");
}
`

func setupStatic(t *testing.T) string {
	t.Helper()
	root, err := os.MkdirTemp("", "optimize-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(root) })

	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "js"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "styles.css"), []byte(sampleCSS), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "js", "app.js"), []byte(sampleJS), 0644))
	return root
}

func TestOptimizerRun(t *testing.T) {
	root := setupStatic(t)

	results, err := New(root, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Source order: css/ before js/.
	assert.Equal(t, "styles.css", results[0].Name)
	assert.Equal(t, "app.js", results[1].Name)

	for _, res := range results {
		assert.Positive(t, res.Original)
		assert.Positive(t, res.Minified)
		assert.Positive(t, res.Gzipped)
		assert.Less(t, res.Minified, res.Original, "%s should shrink", res.Name)
	}

	for _, artifact := range []string{
		filepath.Join(root, "css", "styles.min.css"),
		filepath.Join(root, "css", "styles.min.css.gz"),
		filepath.Join(root, "js", "app.min.js"),
		filepath.Join(root, "js", "app.min.js.gz"),
	} {
		_, err := os.Stat(artifact)
		assert.NoError(t, err, "missing %s", artifact)
	}
}

func TestOptimizerSkipsMinifiedSources(t *testing.T) {
	root := setupStatic(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "vendor.min.css"), []byte("a{}"), 0644))

	results, err := New(root, nil).Run(context.Background())
	require.NoError(t, err)
	for _, res := range results {
		assert.NotContains(t, res.Name, ".min.")
	}
	_, err = os.Stat(filepath.Join(root, "css", "vendor.min.min.css"))
	assert.True(t, os.IsNotExist(err))
}

func TestOptimizerRerunOverwrites(t *testing.T) {
	root := setupStatic(t)
	opt := New(root, nil)

	first, err := opt.Run(context.Background())
	require.NoError(t, err)
	second, err := opt.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizerMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(os.TempDir(), "no-static-here"), nil).Run(context.Background())
	require.Error(t, err)

	var inputErr *audit.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestOptimizerCancelledContext(t *testing.T) {
	root := setupStatic(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(root, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReductions(t *testing.T) {
	res := Result{Original: 1000, Minified: 600, Gzipped: 150}
	assert.InDelta(t, 40.0, res.MinifyReduction(), 1e-9)
	assert.InDelta(t, 75.0, res.GzipReduction(), 1e-9)
}
