package domain

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

const (
	// gcov does not wrap lines, but long mangled C++ names can exceed bufio's default.
	maxDumpLineSize = 1 << 20
)

// Parse reads a gcov intermediate text dump and builds a Record from it.
//
// Lines are folded into a RecordBuilder one at a time: a file tag switches the
// active file, every other tag appends to it. Any rejected line aborts the
// parse with a *ParseError; no partial record is returned.
func Parse(r io.Reader, source m.Path, sourceDirs []m.Path) (*m.Record, error) {
	builder := m.NewRecordBuilder(source, sourceDirs)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxDumpLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if err := foldLine(builder, line); err != nil {
			return nil, &ParseError{Source: source, LineNo: lineNo, Line: line, Reason: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	record := builder.Build()
	slog.Debug("Parsed coverage dump", "source", source, "files", record.Len(), "lines", lineNo)

	return record, nil
}

func foldLine(builder *m.RecordBuilder, line string) error {
	if rest, ok := strings.CutPrefix(line, m.TagFile); ok {
		slog.Debug("Found source file", "path", rest)
		builder.OpenFile(m.Path(rest))

		return nil
	}

	tag, fields, ok := splitRecord(line)
	if !ok {
		return ErrUnknownTag
	}

	if !builder.HasActiveFile() {
		return ErrNoFileContext
	}

	switch tag {
	case m.TagFunction:
		if len(fields) < m.MinFunctionFields {
			return ErrShortFunction
		}

		builder.AddFunction(m.Function{Fields: fields})
	case m.TagLCount:
		if len(fields) < m.MinLineCountFields {
			return ErrShortLineCount
		}

		builder.AddLineCount(m.LineCount{Fields: fields})
	case m.TagBranch:
		if len(fields) < m.MinBranchFields {
			return ErrShortBranch
		}

		builder.AddBranchCount(m.BranchCount{Fields: fields})
	}

	return nil
}

// splitRecord matches a record tag and splits the remainder on commas.
func splitRecord(line string) (string, []string, bool) {
	for _, tag := range []string{m.TagFunction, m.TagLCount, m.TagBranch} {
		if rest, ok := strings.CutPrefix(line, tag); ok {
			return tag, strings.Split(rest, ","), true
		}
	}

	return "", nil, false
}
