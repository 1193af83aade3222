// Package domain implements gcov dump parsing, record comparison and the
// workflows driven by the CLI commands.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gcovcheck.dev/pkg/gcovcheck/internal/adapter"
	"gcovcheck.dev/pkg/gcovcheck/internal/controller"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// Output formats accepted by Show.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

var (
	// ErrRecordsDiffer is returned by Compare when the records are not equal.
	ErrRecordsDiffer = errors.New("coverage records differ")
	// ErrCheckFailed is returned by Check when any monitored file fails.
	ErrCheckFailed = errors.New("coverage check failed")
)

// ShowArgs contains the arguments for displaying one dump.
type ShowArgs struct {
	Path       m.Path
	SourceDirs []m.Path
	Format     string
}

// CompareArgs contains the arguments for comparing two dumps.
type CompareArgs struct {
	Left       m.Path
	Right      m.Path
	SourceDirs []m.Path
	Diff       bool
}

// LinesArgs contains the arguments for a line-range query.
type LinesArgs struct {
	Path       m.Path
	SourceDirs []m.Path
	File       m.Path
	Lines      m.LineRange
}

// CheckArgs contains the arguments for checking one dump iteration.
type CheckArgs struct {
	Files      []m.MonitoredFile
	SourceDirs []m.Path
	Iteration  int
	Parallel   int
}

// ExportArgs contains the arguments for exporting a dump as a YAML snapshot.
type ExportArgs struct {
	Path       m.Path
	Output     m.Path
	SourceDirs []m.Path
}

// Workflow defines the operations behind the CLI commands.
type Workflow interface {
	Show(ctx context.Context, args ShowArgs) error
	Compare(ctx context.Context, args CompareArgs) error
	Lines(ctx context.Context, args LinesArgs) error
	Check(ctx context.Context, args CheckArgs) error
	Export(ctx context.Context, args ExportArgs) error
}

type workflow struct {
	adapter.RecordStore
	controller.UI
	Loader
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(recordStore adapter.RecordStore, ui controller.UI, loader Loader) Workflow {
	return &workflow{
		RecordStore: recordStore,
		UI:          ui,
		Loader:      loader,
	}
}

func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	record, err := w.Load(ctx, args.Path, args.SourceDirs)
	if err != nil {
		slog.Error("Failed to load coverage", "path", args.Path, "error", err)
		return fmt.Errorf("load %s: %w", args.Path, err)
	}

	switch args.Format {
	case "", FormatTable:
		return w.DisplayRecord(ctx, record)
	case FormatYAML:
		return w.EncodeRecord(w.Writer(), record)
	}

	return fmt.Errorf("unknown format %q", args.Format)
}

func (w *workflow) Compare(ctx context.Context, args CompareArgs) error {
	left, err := w.Load(ctx, args.Left, args.SourceDirs)
	if err != nil {
		slog.Error("Failed to load coverage", "path", args.Left, "error", err)
		return fmt.Errorf("load %s: %w", args.Left, err)
	}

	right, err := w.Load(ctx, args.Right, args.SourceDirs)
	if err != nil {
		slog.Error("Failed to load coverage", "path", args.Right, "error", err)
		return fmt.Errorf("load %s: %w", args.Right, err)
	}

	mismatches := Compare(left, right)

	var diff string
	if args.Diff && len(mismatches) > 0 {
		diff, err = Diff(left, right)
		if err != nil {
			return err
		}
	}

	w.DisplayComparison(ctx, left, right, mismatches, diff)

	if len(mismatches) > 0 {
		slog.Info("Coverage records differ", "left", args.Left, "right", args.Right, "mismatches", len(mismatches))
		return ErrRecordsDiffer
	}

	return nil
}

func (w *workflow) Lines(ctx context.Context, args LinesArgs) error {
	if args.Lines.Start > args.Lines.End {
		return fmt.Errorf("invalid line range [%d, %d]", args.Lines.Start, args.Lines.End)
	}

	record, err := w.Load(ctx, args.Path, args.SourceDirs)
	if err != nil {
		slog.Error("Failed to load coverage", "path", args.Path, "error", err)
		return fmt.Errorf("load %s: %w", args.Path, err)
	}

	hits, err := RangeQuery(record, args.File, args.Lines.Start, args.Lines.End)
	if err != nil {
		return err
	}

	w.DisplayLines(ctx, args.File, args.Lines, hits)

	return nil
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if len(args.Files) == 0 {
		return errors.New("no monitored files configured")
	}

	checker, err := NewChecker(ctx, w.Loader, args.Files, args.SourceDirs, args.Parallel)
	if err != nil {
		slog.Error("Failed to prepare checker", "error", err)
		return fmt.Errorf("prepare check: %w", err)
	}

	verdict, err := checker.Check(ctx, args.Iteration)
	if err != nil {
		slog.Error("Failed to check coverage", "iteration", args.Iteration, "error", err)
		return fmt.Errorf("check iteration %d: %w", args.Iteration, err)
	}

	w.DisplayVerdict(ctx, verdict)

	if !verdict.OK() {
		return ErrCheckFailed
	}

	return nil
}

func (w *workflow) Export(ctx context.Context, args ExportArgs) error {
	record, err := w.Load(ctx, args.Path, args.SourceDirs)
	if err != nil {
		slog.Error("Failed to load coverage", "path", args.Path, "error", err)
		return fmt.Errorf("load %s: %w", args.Path, err)
	}

	if err := w.SaveRecord(args.Output, record); err != nil {
		slog.Error("Failed to save snapshot", "output", args.Output, "error", err)
		return fmt.Errorf("save %s: %w", args.Output, err)
	}

	return nil
}
