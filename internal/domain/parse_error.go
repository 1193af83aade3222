package domain

import (
	"errors"
	"fmt"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// Reasons a dump line is rejected. A ParseError always wraps one of them.
var (
	ErrUnknownTag     = errors.New("unknown tag")
	ErrShortFunction  = errors.New("short function record")
	ErrShortLineCount = errors.New("short line count record")
	ErrShortBranch    = errors.New("short branch record")
	ErrNoFileContext  = errors.New("record before any file context")
)

// ParseError reports a malformed or unrecognized line of a coverage dump.
type ParseError struct {
	Source m.Path
	LineNo int
	Line   string
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v in line %q", e.Source, e.LineNo, e.Reason, e.Line)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}
