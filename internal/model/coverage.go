// Package model defines the data structures for gcov coverage snapshots.
package model

import "strings"

// Tag prefixes of the gcov intermediate text format.
const (
	TagFile     = "file:"
	TagFunction = "function:"
	TagLCount   = "lcount:"
	TagBranch   = "branch:"
)

const fieldSeparator = ","

// Minimum field counts of each record tag.
const (
	MinFunctionFields  = 3
	MinLineCountFields = 2
	MinBranchFields    = 2
)

// Function is a `function:` record. Fields are kept as emitted: start line,
// execution count, name and anything gcov appends after them.
type Function struct {
	Fields []string
}

// StartLine returns the raw start-line field.
func (f Function) StartLine() string { return field(f.Fields, 0) }

// ExecCount returns the raw execution-count field.
func (f Function) ExecCount() string { return field(f.Fields, 1) }

// Name returns the function name.
func (f Function) Name() string { return field(f.Fields, 2) }

func (f Function) String() string {
	return TagFunction + strings.Join(f.Fields, fieldSeparator)
}

// LineCount is an `lcount:` record: line number, execution count, extras.
type LineCount struct {
	Fields []string
}

// Line returns the raw line-number field.
func (l LineCount) Line() string { return field(l.Fields, 0) }

// Count returns the raw execution-count field.
func (l LineCount) Count() string { return field(l.Fields, 1) }

func (l LineCount) String() string {
	return TagLCount + strings.Join(l.Fields, fieldSeparator)
}

// BranchCount is a `branch:` record: line number, branch descriptor, extras.
type BranchCount struct {
	Fields []string
}

// Line returns the raw line-number field.
func (b BranchCount) Line() string { return field(b.Fields, 0) }

// Descriptor returns the raw branch outcome descriptor (e.g. "taken").
func (b BranchCount) Descriptor() string { return field(b.Fields, 1) }

func (b BranchCount) String() string {
	return TagBranch + strings.Join(b.Fields, fieldSeparator)
}

// FileCoverage holds everything a dump reports for one source file.
// Functions, LineCounts and BranchCounts are never nil.
type FileCoverage struct {
	Path         Path
	Functions    map[string]Function
	LineCounts   []LineCount
	BranchCounts []BranchCount
}

func newFileCoverage(path Path) *FileCoverage {
	return &FileCoverage{
		Path:         path,
		Functions:    map[string]Function{},
		LineCounts:   []LineCount{},
		BranchCounts: []BranchCount{},
	}
}

// LineHit is a line number with its execution count, both converted to integers.
type LineHit struct {
	Line  int `yaml:"line"`
	Count int `yaml:"count"`
}

// LineRange is an inclusive range of source lines.
type LineRange struct {
	Start int `mapstructure:"start" yaml:"start"`
	End   int `mapstructure:"end" yaml:"end"`
}

// Contains reports whether line lies within the range, bounds included.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}

	return ""
}
