// Package audit evaluates static HTML files against a fixed accessibility
// and SEO rule set. Parsing and evaluation are separate phases: a document
// inventory is extracted first, then every rule in the registry runs over
// it in order. A file that fails to load or parse aborts the run; findings
// themselves are never errors.
package audit

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Auditor runs the rule registry over HTML inputs and accumulates findings
// across files into a single report.
type Auditor struct {
	env Env
	log *zap.Logger
}

// New returns an auditor for the given environment. A nil logger disables
// diagnostics.
func New(env Env, log *zap.Logger) *Auditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auditor{env: env, log: log}
}

// Run audits every path in order. Directory arguments are walked recursively
// for *.html files in lexical order; explicit file arguments are audited
// as given. Findings from all files accumulate into one report.
func (a *Auditor) Run(paths ...string) (Report, error) {
	files, err := collectInputs(paths)
	if err != nil {
		return Report{}, err
	}

	var findings []Finding
	for _, file := range files {
		doc, err := LoadFile(file)
		if err != nil {
			return Report{}, err
		}
		found := evaluate(doc, a.env)
		a.log.Debug("audited file",
			zap.String("path", file),
			zap.Int("findings", len(found)))
		findings = append(findings, found...)
	}
	return Summarize(findings), nil
}

// AuditFile audits a single file and returns its findings.
func (a *Auditor) AuditFile(path string) ([]Finding, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return evaluate(doc, a.env), nil
}

// AuditReader audits an in-memory document. The name appears in parse
// errors and may be empty.
func (a *Auditor) AuditReader(r io.Reader, name string) ([]Finding, error) {
	doc, err := Parse(r, name)
	if err != nil {
		return nil, err
	}
	return evaluate(doc, a.env), nil
}

func collectInputs(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &InputError{Path: p, Err: err}
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		walkErr := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return &InputError{Path: path, Err: err}
			}
			if d.IsDir() {
				return nil
			}
			if strings.ToLower(filepath.Ext(path)) == ".html" {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	return files, nil
}
