// Package optimize produces the minified and gzipped companions the asset
// collector looks for. Stylesheets and scripts under the static root are
// minified to name.min.ext and each artifact is gzipped to name.min.ext.gz.
package optimize

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sitewise/internal/assets"
	"sitewise/internal/audit"
)

// Result records the size progression of one source file through
// minification and compression.
type Result struct {
	Name     string
	Path     string
	Original int64
	Minified int64
	Gzipped  int64
}

// MinifyReduction is the size win of the minified artifact over the source.
func (r Result) MinifyReduction() float64 {
	return assets.Reduction(r.Original, r.Minified)
}

// GzipReduction is the size win of the gzip companion over the minified
// artifact.
func (r Result) GzipReduction() float64 {
	return assets.Reduction(r.Minified, r.Gzipped)
}

const defaultWorkers = 4

// Optimizer minifies css/ and js/ under a static root. Files are processed
// through a bounded worker group; the first failure aborts the run.
type Optimizer struct {
	root    string
	workers int
	log     *zap.Logger
	min     *minify.M
}

func New(root string, log *zap.Logger) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)
	return &Optimizer{root: root, workers: defaultWorkers, log: log, min: m}
}

// Run optimizes every eligible file and returns results in source order.
func (o *Optimizer) Run(ctx context.Context) ([]Result, error) {
	files, err := o.sources()
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := o.optimizeFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// sources lists plain .css and .js files in lexical order, skipping
// already-minified ones.
func (o *Optimizer) sources() ([]string, error) {
	if _, err := os.Stat(o.root); err != nil {
		return nil, &audit.InputError{Path: o.root, Err: err}
	}
	var files []string
	for _, sub := range []string{"css", "js"} {
		dir := filepath.Join(o.root, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		ext := "." + sub
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ext) || strings.HasSuffix(name, ".min"+ext) {
				continue
			}
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

func (o *Optimizer) optimizeFile(path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &audit.InputError{Path: path, Err: err}
	}

	ext := filepath.Ext(path)
	mediatype := "text/css"
	if ext == ".js" {
		mediatype = "application/javascript"
	}

	minified, err := o.min.Bytes(mediatype, src)
	if err != nil {
		return Result{}, &audit.ParseError{Path: path, Err: err}
	}

	stem := strings.TrimSuffix(path, ext)
	minPath := stem + ".min" + ext
	if err := os.WriteFile(minPath, minified, 0644); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return Result{}, err
	}
	if _, err := zw.Write(minified); err != nil {
		return Result{}, err
	}
	if err := zw.Close(); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(minPath+".gz", buf.Bytes(), 0644); err != nil {
		return Result{}, err
	}

	res := Result{
		Name:     filepath.Base(path),
		Path:     path,
		Original: int64(len(src)),
		Minified: int64(len(minified)),
		Gzipped:  int64(buf.Len()),
	}
	o.log.Debug("optimized file",
		zap.String("name", res.Name),
		zap.Int64("original", res.Original),
		zap.Int64("minified", res.Minified),
		zap.Int64("gzipped", res.Gzipped))
	return res, nil
}
