package model

import "fmt"

// MismatchKind classifies a difference found by Compare.
type MismatchKind string

// Available MismatchKind values.
const (
	MismatchMissingFile     MismatchKind = "missing file"
	MismatchMissingFunction MismatchKind = "missing function"
	MismatchLineCount       MismatchKind = "line count"
	MismatchBranch          MismatchKind = "branch"
	MismatchLineCountLength MismatchKind = "line count length"
	MismatchBranchLength    MismatchKind = "branch length"
)

// Mismatch describes one difference between two records. Want comes from the
// left-hand record, Got from the right-hand one.
type Mismatch struct {
	Kind  MismatchKind
	File  Path
	Index int
	Want  string
	Got   string
}

func (mm Mismatch) String() string {
	switch mm.Kind {
	case MismatchMissingFile:
		return fmt.Sprintf("%s: %s", mm.Kind, mm.File)
	case MismatchMissingFunction:
		return fmt.Sprintf("%s: %s in %s", mm.Kind, mm.Want, mm.File)
	case MismatchLineCountLength, MismatchBranchLength:
		return fmt.Sprintf("%s: %s has %s records, other has %s", mm.Kind, mm.File, mm.Want, mm.Got)
	case MismatchLineCount, MismatchBranch:
		return fmt.Sprintf("%s: %s #%d want %s got %s", mm.Kind, mm.File, mm.Index, mm.Want, mm.Got)
	}

	return string(mm.Kind)
}
