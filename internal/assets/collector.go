// Package assets measures how well a static directory is optimized. It
// checks every stylesheet and script for a minified companion, every
// minified artifact for a gzip companion, and sums raw asset sizes.
// The walk order is lexical so repeated runs produce identical results.
package assets

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"sitewise/internal/audit"
)

// SizeCheck reports whether a derived artifact (minified or gzipped copy)
// exists for one source file and how much smaller it is. Reduction is
// meaningless when Found is false and may be negative when the artifact
// grew.
type SizeCheck struct {
	Name      string
	Found     bool
	Reduction float64
}

// Totals sums every regular file under the static root except the gzip
// companions, which duplicate bytes already counted.
type Totals struct {
	Files int
	Bytes int64
}

// KB returns the total size in kilobytes.
func (t Totals) KB() float64 { return float64(t.Bytes) / 1024 }

// Snapshot is one full pass over the static directory.
type Snapshot struct {
	Minified []SizeCheck
	Gzipped  []SizeCheck
	Totals   Totals
}

// Collector scans a static asset root. Stylesheets live under css/, scripts
// under js/, matching the site layout conventions.
type Collector struct {
	root string
	log  *zap.Logger
}

func NewCollector(root string, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{root: root, log: log}
}

// Collect runs all checks sequentially. A missing root is an input error;
// missing css/ or js/ subdirectories simply contribute no checks.
func (c *Collector) Collect() (Snapshot, error) {
	if _, err := os.Stat(c.root); err != nil {
		return Snapshot{}, &audit.InputError{Path: c.root, Err: err}
	}

	var snap Snapshot
	var err error
	if snap.Minified, err = c.minifyChecks(); err != nil {
		return Snapshot{}, err
	}
	if snap.Gzipped, err = c.gzipChecks(); err != nil {
		return Snapshot{}, err
	}
	if snap.Totals, err = c.totals(); err != nil {
		return Snapshot{}, err
	}

	c.log.Debug("collected asset metrics",
		zap.String("root", c.root),
		zap.Int("minify_checks", len(snap.Minified)),
		zap.Int("gzip_checks", len(snap.Gzipped)),
		zap.Int("files", snap.Totals.Files))
	return snap, nil
}

// minifyChecks pairs each plain .css/.js file with its name.min.ext
// companion. Already-minified files are sources for the gzip pass, not
// this one.
func (c *Collector) minifyChecks() ([]SizeCheck, error) {
	var checks []SizeCheck
	for _, sub := range []string{"css", "js"} {
		dir := filepath.Join(c.root, sub)
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
			info, err := entry.Info()
			if err != nil {
				return nil, &audit.InputError{Path: filepath.Join(dir, name), Err: err}
			}
			stem := strings.TrimSuffix(name, ext)
			minPath := filepath.Join(dir, stem+".min"+ext)
			minInfo, err := os.Stat(minPath)
			if err != nil {
				checks = append(checks, SizeCheck{Name: name})
				continue
			}
			checks = append(checks, SizeCheck{
				Name:      name,
				Found:     true,
				Reduction: Reduction(info.Size(), minInfo.Size()),
			})
		}
	}
	return checks, nil
}

// gzipChecks pairs every *.min.* file, wherever it sits under the root,
// with a <file>.gz companion. A missing companion is reported and the
// scan continues.
func (c *Collector) gzipChecks() ([]SizeCheck, error) {
	var checks []SizeCheck
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &audit.InputError{Path: path, Err: err}
		}
		if d.IsDir() || !strings.Contains(d.Name(), ".min.") || strings.HasSuffix(d.Name(), ".gz") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return &audit.InputError{Path: path, Err: err}
		}
		gzInfo, err := os.Stat(path + ".gz")
		if err != nil {
			checks = append(checks, SizeCheck{Name: d.Name()})
			return nil
		}
		checks = append(checks, SizeCheck{
			Name:      d.Name(),
			Found:     true,
			Reduction: Reduction(info.Size(), gzInfo.Size()),
		})
		return nil
	})
	return checks, err
}

func (c *Collector) totals() (Totals, error) {
	var t Totals
	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &audit.InputError{Path: path, Err: err}
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), ".gz") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return &audit.InputError{Path: path, Err: err}
		}
		t.Files++
		t.Bytes += info.Size()
		return nil
	})
	return t, err
}

// Reduction returns how much smaller derived is than original, in percent.
// Negative values mean the derived file grew and are passed through
// unclamped. A zero-byte original yields zero.
func Reduction(original, derived int64) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(derived)/float64(original)) * 100
}
