package domain

import (
	"fmt"
	"sort"
	"strconv"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// InScope reports whether path starts with one of dirs.
func InScope(dirs []m.Path, path m.Path) bool {
	return path.InAny(dirs)
}

// Equal reports whether b covers a: every file of a must exist in b, and every
// file of a under a's source directories must have its functions present in b
// and the same line count and branch records at the same positions.
//
// The relation is not symmetric. Files only b has are never looked at.
func Equal(a, b *m.Record) bool {
	return len(compare(a, b, true)) == 0
}

// Compare walks the records like Equal and returns every mismatch it finds.
func Compare(a, b *m.Record) []m.Mismatch {
	return compare(a, b, false)
}

func compare(a, b *m.Record, stopAtFirst bool) []m.Mismatch {
	var mismatches []m.Mismatch

	dirs := a.SourceDirs()

	for _, path := range a.Paths() {
		left, _ := a.File(path)

		right, ok := b.File(path)
		if !ok {
			mismatches = append(mismatches, m.Mismatch{Kind: m.MismatchMissingFile, File: path})
			if stopAtFirst {
				return mismatches
			}

			continue
		}

		if !InScope(dirs, path) {
			continue
		}

		mismatches = append(mismatches, compareFile(left, right)...)
		if stopAtFirst && len(mismatches) > 0 {
			return mismatches[:1]
		}
	}

	return mismatches
}

func compareFile(left, right m.FileCoverage) []m.Mismatch {
	var mismatches []m.Mismatch

	for _, name := range sortedFunctionNames(left.Functions) {
		if _, ok := right.Functions[name]; !ok {
			mismatches = append(mismatches, m.Mismatch{Kind: m.MismatchMissingFunction, File: left.Path, Want: name})
		}
	}

	if len(left.LineCounts) != len(right.LineCounts) {
		mismatches = append(mismatches, lengthMismatch(m.MismatchLineCountLength, left.Path, len(left.LineCounts), len(right.LineCounts)))
	} else {
		for i := range left.LineCounts {
			l, r := left.LineCounts[i], right.LineCounts[i]
			if l.Line() != r.Line() || l.Count() != r.Count() {
				mismatches = append(mismatches, m.Mismatch{
					Kind: m.MismatchLineCount, File: left.Path, Index: i,
					Want: l.Line() + "," + l.Count(),
					Got:  r.Line() + "," + r.Count(),
				})
			}
		}
	}

	if len(left.BranchCounts) != len(right.BranchCounts) {
		mismatches = append(mismatches, lengthMismatch(m.MismatchBranchLength, left.Path, len(left.BranchCounts), len(right.BranchCounts)))
	} else {
		for i := range left.BranchCounts {
			l, r := left.BranchCounts[i], right.BranchCounts[i]
			if l.Line() != r.Line() || l.Descriptor() != r.Descriptor() {
				mismatches = append(mismatches, m.Mismatch{
					Kind: m.MismatchBranch, File: left.Path, Index: i,
					Want: l.Line() + "," + l.Descriptor(),
					Got:  r.Line() + "," + r.Descriptor(),
				})
			}
		}
	}

	return mismatches
}

func lengthMismatch(kind m.MismatchKind, path m.Path, want, got int) m.Mismatch {
	return m.Mismatch{Kind: kind, File: path, Want: strconv.Itoa(want), Got: strconv.Itoa(got)}
}

// RangeQuery returns the line counts of file whose line number lies in
// [start, end], in dump order. An absent file yields an empty result.
func RangeQuery(record *m.Record, file m.Path, start, end int) ([]m.LineHit, error) {
	hits := []m.LineHit{}

	fc, ok := record.File(file)
	if !ok {
		return hits, nil
	}

	bounds := m.LineRange{Start: start, End: end}

	for i, lc := range fc.LineCounts {
		line, err := strconv.Atoi(lc.Line())
		if err != nil {
			return nil, fmt.Errorf("%s: %s record #%d %q: bad line number: %w", record.Source(), file, i, lc.String(), err)
		}

		if !bounds.Contains(line) {
			continue
		}

		count, err := strconv.Atoi(lc.Count())
		if err != nil {
			return nil, fmt.Errorf("%s: %s record #%d %q: bad count: %w", record.Source(), file, i, lc.String(), err)
		}

		hits = append(hits, m.LineHit{Line: line, Count: count})
	}

	return hits, nil
}

func sortedFunctionNames(functions map[string]m.Function) []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
