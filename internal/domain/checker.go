package domain

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// Checker verifies successive dumps of monitored files against their
// references. After the first iteration a dump must equal its reference;
// after iteration i the constant lines keep their reference counts and the
// dynamic lines have grown by exactly i.
type Checker interface {
	Check(ctx context.Context, iteration int) (m.Verdict, error)
}

type baseline struct {
	file      m.MonitoredFile
	reference *m.Record
	constant  []m.LineHit
	dynamic   []m.LineHit
}

type checker struct {
	loader     Loader
	sourceDirs []m.Path
	parallel   int
	baselines  []baseline
}

// NewChecker loads the reference of every monitored file and captures the
// counts of its constant and dynamic ranges.
func NewChecker(ctx context.Context, loader Loader, files []m.MonitoredFile, sourceDirs []m.Path, parallel int) (Checker, error) {
	c := &checker{
		loader:     loader,
		sourceDirs: sourceDirs,
		parallel:   parallel,
		baselines:  make([]baseline, 0, len(files)),
	}

	for _, file := range files {
		ref, err := loader.Load(ctx, file.Reference, sourceDirs)
		if err != nil {
			return nil, fmt.Errorf("load reference %s: %w", file.Reference, err)
		}

		b := baseline{file: file, reference: ref}

		if b.constant, err = queryRange(ref, file.Source, file.Constant); err != nil {
			return nil, err
		}

		if b.dynamic, err = queryRange(ref, file.Source, file.Dynamic); err != nil {
			return nil, err
		}

		c.baselines = append(c.baselines, b)
	}

	return c, nil
}

func (c *checker) Check(ctx context.Context, iteration int) (m.Verdict, error) {
	if iteration < 0 {
		return m.Verdict{}, fmt.Errorf("iteration must not be negative: %d", iteration)
	}

	dumps, err := c.loadDumps(ctx)
	if err != nil {
		return m.Verdict{}, err
	}

	verdict := m.Verdict{Iteration: iteration, Files: make([]m.FileVerdict, 0, len(c.baselines))}

	for i, b := range c.baselines {
		fv := m.FileVerdict{Source: b.file.Source, Data: b.file.Data}

		if iteration == 0 {
			for _, mm := range Compare(dumps[i], b.reference) {
				fv.Failures = append(fv.Failures, mm.String())
			}
		} else {
			failures, err := c.checkRanges(b, dumps[i], iteration)
			if err != nil {
				return m.Verdict{}, err
			}

			fv.Failures = failures
		}

		if !fv.OK() {
			slog.Info("Coverage check failed", "iteration", iteration, "source", fv.Source, "failures", len(fv.Failures))
		}

		verdict.Files = append(verdict.Files, fv)
	}

	return verdict, nil
}

func (c *checker) loadDumps(ctx context.Context) ([]*m.Record, error) {
	dumps := make([]*m.Record, len(c.baselines))

	group, groupCtx := errgroup.WithContext(ctx)
	if c.parallel > 0 {
		group.SetLimit(c.parallel)
	}

	for i, b := range c.baselines {
		group.Go(func() error {
			rec, err := c.loader.Load(groupCtx, b.file.Data, c.sourceDirs)
			if err != nil {
				return fmt.Errorf("load %s: %w", b.file.Data, err)
			}

			dumps[i] = rec

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return dumps, nil
}

func (c *checker) checkRanges(b baseline, dump *m.Record, iteration int) ([]string, error) {
	var failures []string

	if len(b.constant) > 0 {
		got, err := queryRange(dump, b.file.Source, b.file.Constant)
		if err != nil {
			return nil, err
		}

		failures = append(failures, compareHits("constant", b.constant, got, 0)...)
	}

	if len(b.dynamic) > 0 {
		got, err := queryRange(dump, b.file.Source, b.file.Dynamic)
		if err != nil {
			return nil, err
		}

		failures = append(failures, compareHits("dynamic", b.dynamic, got, iteration)...)
	}

	return failures, nil
}

// compareHits expects got to list the same lines as want with every count
// raised by delta.
func compareHits(label string, want, got []m.LineHit, delta int) []string {
	if len(got) == 0 {
		return []string{fmt.Sprintf("%s lines: no coverage in range", label)}
	}

	if len(got) != len(want) {
		return []string{fmt.Sprintf("%s lines: want %d records, got %d", label, len(want), len(got))}
	}

	var failures []string

	for k := range want {
		if got[k].Line != want[k].Line {
			failures = append(failures, fmt.Sprintf("%s lines: record #%d is line %d, want line %d", label, k, got[k].Line, want[k].Line))
			continue
		}

		if got[k].Count != want[k].Count+delta {
			failures = append(failures, fmt.Sprintf("%s lines: line %d count %d, want %d", label, got[k].Line, got[k].Count, want[k].Count+delta))
		}
	}

	return failures
}

func queryRange(record *m.Record, source m.Path, r *m.LineRange) ([]m.LineHit, error) {
	if r == nil {
		return nil, nil
	}

	return RangeQuery(record, source, r.Start, r.End)
}
