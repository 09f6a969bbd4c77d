package audit

import "fmt"

// InputError means a file or directory could not be read at all. It aborts
// the run; there is no partial report to salvage from an unreadable input.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseError means a file was readable but could not be parsed as HTML.
// Findings are never emitted for a document that failed to parse.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
