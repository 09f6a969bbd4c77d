// Package features probes the site source for optimization markers that a
// parse-based audit cannot see: skip links and focus styles, social meta
// tags, resource hints, CSS containment. Every probe is a plain substring
// check over the base template or the stylesheet, reported in a fixed order.
package features

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Check is one probe outcome. Label already reflects the outcome, the way
// the report prints it.
type Check struct {
	Passed bool
	Label  string
}

// Sections groups the probes the way the performance report sections them.
type Sections struct {
	Accessibility []Check
	SEO           []Check
	Performance   []Check
}

// All returns every check in render order.
func (s Sections) All() []Check {
	out := make([]Check, 0, len(s.Accessibility)+len(s.SEO)+len(s.Performance))
	out = append(out, s.Accessibility...)
	out = append(out, s.SEO...)
	out = append(out, s.Performance...)
	return out
}

// Scanner probes a base template, a stylesheet, and the static root.
// Missing files are not fatal; their probes simply fail.
type Scanner struct {
	baseTemplate string
	stylesheet   string
	staticDir    string
	log          *zap.Logger
}

func NewScanner(baseTemplate, stylesheet, staticDir string, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		baseTemplate: baseTemplate,
		stylesheet:   stylesheet,
		staticDir:    staticDir,
		log:          log,
	}
}

// Scan reads both sources once and runs every probe.
func (s *Scanner) Scan() Sections {
	base := readAll(s.baseTemplate)
	css := readAll(s.stylesheet)
	if base == "" {
		s.log.Debug("base template unreadable or empty", zap.String("path", s.baseTemplate))
	}

	probe := func(ok bool, passLabel, failLabel string) Check {
		if ok {
			return Check{Passed: true, Label: passLabel}
		}
		return Check{Label: failLabel}
	}

	var sec Sections
	sec.Accessibility = []Check{
		probe(strings.Contains(base, "skip-link"),
			"Skip link implemented", "Skip link missing"),
		probe(strings.Contains(base, "aria-label"),
			"ARIA labels present", "ARIA labels missing"),
		probe(strings.Contains(css, ":focus"),
			"Focus indicators implemented", "Focus indicators missing"),
		probe(strings.Contains(base, "prefers-reduced-motion") || strings.Contains(css, "prefers-reduced-motion"),
			"Reduced motion support", "Reduced motion support missing"),
	}

	sec.SEO = []Check{
		probe(strings.Contains(base, `meta name="description"`),
			"Meta description present", "Meta description missing"),
		probe(strings.Contains(base, `property="og:`),
			"Open Graph tags present", "Open Graph tags missing"),
		probe(strings.Contains(base, `name="twitter:`),
			"Twitter Card tags present", "Twitter Card tags missing"),
		probe(strings.Contains(base, "application/ld+json"),
			"Structured data (JSON-LD) present", "Structured data missing"),
		probe(strings.Contains(base, `rel="canonical"`),
			"Canonical URL present", "Canonical URL missing"),
		probe(fileExists(filepath.Join(s.staticDir, "robots.txt")),
			"robots.txt file present", "robots.txt file missing"),
	}

	sec.Performance = []Check{
		probe(strings.Contains(base, `rel="preconnect"`),
			"Preconnect hints present", "Preconnect hints missing"),
		probe(strings.Contains(base, `rel="dns-prefetch"`),
			"DNS prefetch hints present", "DNS prefetch hints missing"),
		probe(strings.Contains(base, `rel="preload"`),
			"Resource preloading present", "Resource preloading missing"),
		probe(strings.Contains(base, "display=swap"),
			"Font display optimization present", "Font display optimization missing"),
		probe(strings.Contains(css, "will-change"),
			"GPU acceleration hints present", "GPU acceleration hints missing"),
		probe(strings.Contains(css, "contain:"),
			"CSS containment present", "CSS containment missing"),
	}
	return sec
}

func readAll(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
