// Package controller provides output adapters for displaying coverage records,
// comparisons and check verdicts.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// UI defines how results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Writer is the raw output stream, used for machine-readable formats.
	Writer() io.Writer
	DisplayRecord(ctx context.Context, record *m.Record) error
	DisplayComparison(ctx context.Context, a, b *m.Record, mismatches []m.Mismatch, diff string)
	DisplayLines(ctx context.Context, file m.Path, lines m.LineRange, hits []m.LineHit)
	DisplayVerdict(ctx context.Context, verdict m.Verdict)
}

// NewUI picks the interactive TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
