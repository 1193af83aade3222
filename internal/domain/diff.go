package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

const diffContextLines = 3

// Diff renders the in-scope file sections of a and the same sections of b
// back into dump lines and returns their unified diff. The result is empty
// when both renderings are identical.
func Diff(a, b *m.Record) (string, error) {
	var left, right []string

	dirs := a.SourceDirs()

	for _, path := range a.Paths() {
		if !InScope(dirs, path) {
			continue
		}

		left = append(left, a.FileLines(path)...)
		right = append(right, b.FileLines(path)...)
	}

	if slices.Equal(left, right) {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        withNewlines(left),
		B:        withNewlines(right),
		FromFile: string(a.Source()),
		ToFile:   string(b.Source()),
		Context:  diffContextLines,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s against %s: %w", a.Source(), b.Source(), err)
	}

	return text, nil
}

func withNewlines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}

	return difflib.SplitLines(strings.Join(lines, "\n"))
}
