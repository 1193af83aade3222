package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

const (
	passLabel = "PASS"
	failLabel = "FAIL"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

// SimpleUI implements UI by printing plain tables to the cobra command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Writer returns the command output stream.
func (s *SimpleUI) Writer() io.Writer {
	return s.cmd.OutOrStdout()
}

// DisplayRecord prints a per-file summary of the record.
func (s *SimpleUI) DisplayRecord(ctx context.Context, record *m.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderRecordTable(record))

	return nil
}

func renderRecordTable(record *m.Record) string {
	var tableBuffer bytes.Buffer

	fmt.Fprintf(&tableBuffer, "%s\n\n", record.Source())

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Scope", "Functions", "Lines", "Executed", "Branches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	var totalFunctions, totalLines, totalExecuted, totalBranches int

	dirs := record.SourceDirs()

	for _, path := range record.Paths() {
		fc, _ := record.File(path)
		executed := executedLines(fc)

		scope := "-"
		if path.InAny(dirs) {
			scope = "yes"
		}

		table.Append([]string{
			string(path),
			scope,
			strconv.Itoa(len(fc.Functions)),
			strconv.Itoa(len(fc.LineCounts)),
			strconv.Itoa(executed),
			strconv.Itoa(len(fc.BranchCounts)),
		})

		totalFunctions += len(fc.Functions)
		totalLines += len(fc.LineCounts)
		totalExecuted += executed
		totalBranches += len(fc.BranchCounts)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", record.Len()),
		"",
		strconv.Itoa(totalFunctions),
		strconv.Itoa(totalLines),
		strconv.Itoa(totalExecuted),
		strconv.Itoa(totalBranches),
	})

	table.Render()

	return tableBuffer.String()
}

// executedLines counts line records with a positive count. Counts that are
// not integers are not counted.
func executedLines(fc m.FileCoverage) int {
	executed := 0

	for _, lc := range fc.LineCounts {
		if n, err := strconv.Atoi(lc.Count()); err == nil && n > 0 {
			executed++
		}
	}

	return executed
}

// DisplayComparison prints the comparison verdict, its mismatches and an optional diff.
func (s *SimpleUI) DisplayComparison(ctx context.Context, a, b *m.Record, mismatches []m.Mismatch, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(mismatches) == 0 {
		s.printf("%s %s matches %s\n", passColor.Sprint(passLabel), a.Source(), b.Source())
		return
	}

	s.printf("%s %s differs from %s (%d mismatches)\n", failColor.Sprint(failLabel), a.Source(), b.Source(), len(mismatches))

	for _, mm := range mismatches {
		s.printf("  %s\n", mm)
	}

	if diff != "" {
		s.printf("\n%s", diff)
	}
}

// DisplayLines prints the result of a range query.
func (s *SimpleUI) DisplayLines(ctx context.Context, file m.Path, lines m.LineRange, hits []m.LineHit) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(hits) == 0 {
		s.printf("%s: no line counts in [%d, %d]\n", file, lines.Start, lines.End)
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Line", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, hit := range hits {
		table.Append([]string{strconv.Itoa(hit.Line), strconv.Itoa(hit.Count)})
	}

	table.Render()

	s.printf("%s [%d, %d]\n%s", file, lines.Start, lines.End, tableBuffer.String())
}

// DisplayVerdict prints one line per monitored file and its failures.
func (s *SimpleUI) DisplayVerdict(ctx context.Context, verdict m.Verdict) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Iteration %d\n", verdict.Iteration)

	for _, fv := range verdict.Files {
		label := passColor.Sprint(passLabel)
		if !fv.OK() {
			label = failColor.Sprint(failLabel)
		}

		s.printf("%s %s (%s)\n", label, fv.Source, fv.Data)

		for _, failure := range fv.Failures {
			s.printf("  %s\n", failure)
		}
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
