package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return cmd, &buf
}

func testRecord() *m.Record {
	b := m.NewRecordBuilder("ref.gcov", []m.Path{"/build/src"})
	b.OpenFile("/build/src/main/gcov_tests.c")
	b.AddFunction(m.Function{Fields: []string{"13", "1", "gcov_test_func"}})
	b.AddLineCount(m.LineCount{Fields: []string{"15", "1"}})
	b.AddLineCount(m.LineCount{Fields: []string{"16", "0"}})
	b.AddBranchCount(m.BranchCount{Fields: []string{"15", "taken"}})
	b.OpenFile("/opt/toolchain/include/stdio.h")
	b.AddLineCount(m.LineCount{Fields: []string{"3", "4"}})

	return b.Build()
}

func TestSimpleUI_DisplayRecord(t *testing.T) {
	cmd, buf := newTestCommand()

	if err := NewSimpleUI(cmd).DisplayRecord(context.Background(), testRecord()); err != nil {
		t.Fatalf("DisplayRecord() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"ref.gcov", "/build/src/main/gcov_tests.c", "/opt/toolchain/include/stdio.h", "yes", "TOTAL FILES 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("DisplayRecord() output missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_DisplayRecordCancelled(t *testing.T) {
	cmd, buf := newTestCommand()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewSimpleUI(cmd).DisplayRecord(ctx, testRecord()); err == nil {
		t.Fatalf("DisplayRecord() expected error for cancelled context")
	}

	if buf.Len() != 0 {
		t.Errorf("DisplayRecord() wrote output after cancellation: %s", buf.String())
	}
}

func TestExecutedLines(t *testing.T) {
	fc := m.FileCoverage{LineCounts: []m.LineCount{
		{Fields: []string{"1", "3"}},
		{Fields: []string{"2", "0"}},
		{Fields: []string{"3", "x"}},
		{Fields: []string{"4", "1"}},
	}}

	if got := executedLines(fc); got != 2 {
		t.Errorf("executedLines() = %d, want 2", got)
	}
}

func TestSimpleUI_DisplayComparison(t *testing.T) {
	tests := []struct {
		name         string
		mismatches   []m.Mismatch
		diff         string
		wantContains []string
	}{
		{
			name:         "equal",
			wantContains: []string{"PASS", "a.gcov matches b.gcov"},
		},
		{
			name: "different with diff",
			mismatches: []m.Mismatch{
				{Kind: m.MismatchLineCount, File: "/build/src/a.c", Index: 1, Want: "20,3", Got: "20,4"},
			},
			diff: "--- a.gcov\n+++ b.gcov\n",
			wantContains: []string{
				"FAIL", "a.gcov differs from b.gcov (1 mismatches)",
				"line count: /build/src/a.c #1 want 20,3 got 20,4", "+++ b.gcov",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, buf := newTestCommand()

			a := m.NewRecordBuilder("a.gcov", nil).Build()
			b := m.NewRecordBuilder("b.gcov", nil).Build()

			NewSimpleUI(cmd).DisplayComparison(context.Background(), a, b, tt.mismatches, tt.diff)

			got := buf.String()
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("DisplayComparison() output missing %q, got: %s", want, got)
				}
			}
		})
	}
}

func TestSimpleUI_DisplayLines(t *testing.T) {
	cmd, buf := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayLines(context.Background(), "a.c", m.LineRange{Start: 28, End: 30}, nil)

	if got := buf.String(); !strings.Contains(got, "a.c: no line counts in [28, 30]") {
		t.Errorf("DisplayLines() empty output = %q", got)
	}

	buf.Reset()
	ui.DisplayLines(context.Background(), "a.c", m.LineRange{Start: 28, End: 30}, []m.LineHit{{Line: 28, Count: 11}, {Line: 30, Count: 11}})

	got := buf.String()
	for _, want := range []string{"a.c [28, 30]", "LINE", "28", "30", "11"} {
		if !strings.Contains(got, want) {
			t.Errorf("DisplayLines() output missing %q, got: %s", want, got)
		}
	}
}

func TestSimpleUI_DisplayVerdict(t *testing.T) {
	cmd, buf := newTestCommand()

	NewSimpleUI(cmd).DisplayVerdict(context.Background(), m.Verdict{
		Iteration: 3,
		Files: []m.FileVerdict{
			{Source: "/build/src/a.c", Data: "obj/a.gcda"},
			{Source: "/build/src/b.c", Data: "obj/b.gcda", Failures: []string{"dynamic lines: line 28 count 9, want 10"}},
		},
	})

	got := buf.String()
	for _, want := range []string{
		"Iteration 3",
		"PASS", "/build/src/a.c (obj/a.gcda)",
		"FAIL", "/build/src/b.c (obj/b.gcda)",
		"  dynamic lines: line 28 count 9, want 10",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DisplayVerdict() output missing %q, got: %s", want, got)
		}
	}
}

func TestNewUI(t *testing.T) {
	cmd, _ := newTestCommand()

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Errorf("NewUI(false) should return *SimpleUI")
	}

	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Errorf("NewUI(true) should return *TUI")
	}
}
