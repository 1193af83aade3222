package model

import (
	"maps"
	"slices"
	"sort"
)

// Record is one parsed coverage dump. It is built once by a RecordBuilder and
// never modified afterwards, so it can be shared between goroutines.
type Record struct {
	source     Path
	sourceDirs []Path
	order      []Path
	files      map[Path]*FileCoverage
}

// Source returns the path the dump was read from.
func (r *Record) Source() Path { return r.source }

// SourceDirs returns the directory prefixes that scope comparisons.
func (r *Record) SourceDirs() []Path {
	return append([]Path(nil), r.sourceDirs...)
}

// Paths returns the file paths in the order the dump declared them.
func (r *Record) Paths() []Path {
	return append([]Path(nil), r.order...)
}

// Len returns the number of files in the record.
func (r *Record) Len() int { return len(r.order) }

// File returns a copy of the coverage of one source file.
func (r *Record) File(path Path) (FileCoverage, bool) {
	fc, ok := r.files[path]
	if !ok {
		return FileCoverage{}, false
	}

	return FileCoverage{
		Path:         fc.Path,
		Functions:    maps.Clone(fc.Functions),
		LineCounts:   slices.Clone(fc.LineCounts),
		BranchCounts: slices.Clone(fc.BranchCounts),
	}, true
}

// FileLines renders the section of one file back into dump lines. Functions
// are emitted sorted by name since the dump order of functions is not kept.
func (r *Record) FileLines(path Path) []string {
	fc, ok := r.files[path]
	if !ok {
		return nil
	}

	lines := make([]string, 0, 1+len(fc.Functions)+len(fc.LineCounts)+len(fc.BranchCounts))
	lines = append(lines, TagFile+string(path))

	names := make([]string, 0, len(fc.Functions))
	for name := range fc.Functions {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		lines = append(lines, fc.Functions[name].String())
	}

	for _, lc := range fc.LineCounts {
		lines = append(lines, lc.String())
	}

	for _, bc := range fc.BranchCounts {
		lines = append(lines, bc.String())
	}

	return lines
}

// RecordBuilder accumulates dump lines into a Record. The builder binds one
// active file at a time; record lines are appended to that file.
type RecordBuilder struct {
	record *Record
	active *FileCoverage
}

// NewRecordBuilder starts an empty record for the given dump source.
func NewRecordBuilder(source Path, sourceDirs []Path) *RecordBuilder {
	return &RecordBuilder{
		record: &Record{
			source:     source,
			sourceDirs: append([]Path(nil), sourceDirs...),
			order:      []Path{},
			files:      map[Path]*FileCoverage{},
		},
	}
}

// OpenFile makes path the active file. A path seen before is reset to empty
// collections but keeps its original position.
func (b *RecordBuilder) OpenFile(path Path) {
	if _, seen := b.record.files[path]; !seen {
		b.record.order = append(b.record.order, path)
	}

	fc := newFileCoverage(path)
	b.record.files[path] = fc
	b.active = fc
}

// HasActiveFile reports whether a file section has been opened.
func (b *RecordBuilder) HasActiveFile() bool { return b.active != nil }

// ActiveFile returns the path of the active file, or "" when there is none.
func (b *RecordBuilder) ActiveFile() Path {
	if b.active == nil {
		return ""
	}

	return b.active.Path
}

// AddFunction adds or overwrites a function of the active file.
func (b *RecordBuilder) AddFunction(fn Function) {
	b.active.Functions[fn.Name()] = fn
}

// AddLineCount appends a line count to the active file.
func (b *RecordBuilder) AddLineCount(lc LineCount) {
	b.active.LineCounts = append(b.active.LineCounts, lc)
}

// AddBranchCount appends a branch record to the active file.
func (b *RecordBuilder) AddBranchCount(bc BranchCount) {
	b.active.BranchCounts = append(b.active.BranchCounts, bc)
}

// Build freezes the accumulated state into a Record. The builder is left
// empty and must not be used afterwards.
func (b *RecordBuilder) Build() *Record {
	record := b.record
	b.record = nil
	b.active = nil

	return record
}
