package domain

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// dumpLoader serves dumps from memory; data paths can be swapped between iterations.
type dumpLoader struct {
	mu    sync.Mutex
	dumps map[m.Path]string
	loads map[m.Path]int
}

func newDumpLoader(dumps map[m.Path]string) *dumpLoader {
	return &dumpLoader{dumps: dumps, loads: map[m.Path]int{}}
}

func (l *dumpLoader) set(path m.Path, dump string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.dumps[path] = dump
}

func (l *dumpLoader) Load(_ context.Context, path m.Path, sourceDirs []m.Path) (*m.Record, error) {
	l.mu.Lock()
	dump, ok := l.dumps[path]
	l.loads[path]++
	l.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}

	return Parse(strings.NewReader(dump), path, sourceDirs)
}

const (
	testsSource   = m.Path("/build/src/main/gcov_tests.c")
	helpersSource = m.Path("/build/src/main/helper_funcs.c")
)

func refDump(dynamicCount int) string {
	return fmt.Sprintf(`file:/build/src/main/gcov_tests.c
function:13,1,gcov_test_func
lcount:15,1
lcount:20,1
lcount:26,1
lcount:28,%d
lcount:30,%d
lcount:39,1
`, dynamicCount, dynamicCount)
}

func helperDump(count int) string {
	return fmt.Sprintf("file:/build/src/main/helper_funcs.c\nlcount:6,%d\nlcount:10,%d\n", count, count)
}

func monitored() []m.MonitoredFile {
	return []m.MonitoredFile{
		{
			Source:    testsSource,
			Data:      "obj/gcov_tests.gcda",
			Reference: "src/gcov_tests.gcda.gcov",
			Constant:  &m.LineRange{Start: 15, End: 26},
			Dynamic:   &m.LineRange{Start: 28, End: 30},
		},
		{
			Source:    helpersSource,
			Data:      "obj/helper_funcs.gcda",
			Reference: "src/helper_funcs.gcda.gcov",
			Dynamic:   &m.LineRange{Start: 6, End: 10},
		},
	}
}

func newTestChecker(t *testing.T, loader *dumpLoader) Checker {
	t.Helper()

	c, err := NewChecker(context.Background(), loader, monitored(), []m.Path{srcDir}, 2)
	require.NoError(t, err)

	return c
}

func TestChecker_FirstIterationMatchesReference(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        refDump(6),
		"obj/helper_funcs.gcda":      helperDump(1),
	})

	verdict, err := newTestChecker(t, loader).Check(context.Background(), 0)
	require.NoError(t, err)

	assert.True(t, verdict.OK())
	assert.Equal(t, 0, verdict.Iteration)
	require.Len(t, verdict.Files, 2)
	assert.Equal(t, testsSource, verdict.Files[0].Source)
	assert.Equal(t, helpersSource, verdict.Files[1].Source)
}

func TestChecker_FirstIterationMismatch(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        refDump(7),
		"obj/helper_funcs.gcda":      helperDump(1),
	})

	verdict, err := newTestChecker(t, loader).Check(context.Background(), 0)
	require.NoError(t, err)

	assert.False(t, verdict.OK())
	assert.False(t, verdict.Files[0].OK())
	assert.True(t, verdict.Files[1].OK())
	assert.Len(t, verdict.Files[0].Failures, 2)
	assert.Contains(t, verdict.Files[0].Failures[0], "want 28,7 got 28,6")
}

func TestChecker_DeltaMatchesOnlyItsIteration(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        refDump(11),
		"obj/helper_funcs.gcda":      helperDump(6),
	})
	checker := newTestChecker(t, loader)

	for iteration := 1; iteration <= 7; iteration++ {
		verdict, err := checker.Check(context.Background(), iteration)
		require.NoError(t, err)
		assert.Equal(t, iteration == 5, verdict.OK(), "iteration %d", iteration)
	}
}

func TestChecker_ConstantLinesMustNotChange(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        strings.Replace(refDump(8), "lcount:20,1", "lcount:20,2", 1),
		"obj/helper_funcs.gcda":      helperDump(3),
	})

	verdict, err := newTestChecker(t, loader).Check(context.Background(), 2)
	require.NoError(t, err)

	assert.False(t, verdict.OK())
	assert.Equal(t, []string{"constant lines: line 20 count 2, want 1"}, verdict.Files[0].Failures)
	assert.True(t, verdict.Files[1].OK())
}

func TestChecker_RangeMissingFromDump(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        "file:/build/src/main/gcov_tests.c\n",
		"obj/helper_funcs.gcda":      helperDump(1) + "file:/build/src/main/helper_funcs.c\nlcount:6,2\n",
	})

	verdict, err := newTestChecker(t, loader).Check(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"constant lines: no coverage in range",
		"dynamic lines: no coverage in range",
	}, verdict.Files[0].Failures)
	assert.Equal(t, []string{"dynamic lines: want 2 records, got 1"}, verdict.Files[1].Failures)
}

func TestChecker_ReloadsDumpsEveryIteration(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov":   refDump(6),
		"src/helper_funcs.gcda.gcov": helperDump(1),
		"obj/gcov_tests.gcda":        refDump(6),
		"obj/helper_funcs.gcda":      helperDump(1),
	})
	checker := newTestChecker(t, loader)

	for iteration := 0; iteration < 3; iteration++ {
		loader.set("obj/gcov_tests.gcda", refDump(6+iteration))
		loader.set("obj/helper_funcs.gcda", helperDump(1+iteration))

		verdict, err := checker.Check(context.Background(), iteration)
		require.NoError(t, err)
		assert.True(t, verdict.OK(), "iteration %d: %v", iteration, verdict.Files)
	}

	assert.Equal(t, 3, loader.loads["obj/gcov_tests.gcda"])
	assert.Equal(t, 1, loader.loads["src/gcov_tests.gcda.gcov"])
}

func TestChecker_LoadErrors(t *testing.T) {
	loader := newDumpLoader(map[m.Path]string{
		"src/gcov_tests.gcda.gcov": refDump(6),
	})

	_, err := NewChecker(context.Background(), loader, monitored(), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load reference src/helper_funcs.gcda.gcov")

	loader.set("src/helper_funcs.gcda.gcov", helperDump(1))

	checker, err := NewChecker(context.Background(), loader, monitored(), nil, 1)
	require.NoError(t, err)

	_, err = checker.Check(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load obj/")

	_, err = checker.Check(context.Background(), -1)
	require.Error(t, err)
}
