package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/shlex"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

const (
	gcovTool = "gcov"
	// DecodedExt is the extension of gcov intermediate text output.
	DecodedExt = ".gcov"
)

// GcovAdapter abstracts decoding a raw counter file (.gcda) into the gcov
// intermediate text format.
type GcovAdapter interface {
	// Decode runs the decoder on rawPath and returns the path of the text
	// file it produced. The produced file is left in place.
	Decode(ctx context.Context, rawPath m.Path) (m.Path, error)
}

// GcovOptions configures LocalGcovAdapter.
type GcovOptions struct {
	// ToolchainPrefix is prepended to "gcov", e.g. "xtensa-esp32-elf-".
	ToolchainPrefix string
	// ExtraArgs is a shell-quoted argument string inserted before the input path.
	ExtraArgs string
	// WorkDir is where gcov runs and writes its output. Empty means the current directory.
	WorkDir string
	// Timeout bounds a single gcov run. Zero disables it.
	Timeout time.Duration
}

// LocalGcovAdapter runs the toolchain's gcov binary through os/exec.
type LocalGcovAdapter struct {
	tool      string
	extraArgs []string
	workDir   string
	timeout   time.Duration
}

// NewLocalGcovAdapter constructs a LocalGcovAdapter. It fails when ExtraArgs
// cannot be split into arguments.
func NewLocalGcovAdapter(opts GcovOptions) (*LocalGcovAdapter, error) {
	extraArgs, err := shlex.Split(opts.ExtraArgs)
	if err != nil {
		return nil, fmt.Errorf("parse gcov extra args %q: %w", opts.ExtraArgs, err)
	}

	return &LocalGcovAdapter{
		tool:      opts.ToolchainPrefix + gcovTool,
		extraArgs: extraArgs,
		workDir:   opts.WorkDir,
		timeout:   opts.Timeout,
	}, nil
}

// Tool returns the decoder binary name.
func (a *LocalGcovAdapter) Tool() string {
	return a.tool
}

// Decode runs `<prefix>gcov -ib <rawPath>` and returns the path of
// `<base name of rawPath>.gcov` in the working directory.
func (a *LocalGcovAdapter) Decode(ctx context.Context, rawPath m.Path) (m.Path, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	input := string(rawPath)
	if a.workDir != "" {
		// gcov runs inside workDir, so relative inputs must not be resolved there.
		abs, err := filepath.Abs(input)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", rawPath, err)
		}

		input = abs
	}

	args := append([]string{"-ib"}, a.extraArgs...)
	args = append(args, input)

	// #nosec G204 - tool name comes from the toolchain prefix setting
	cmd := exec.CommandContext(ctx, a.tool, args...)
	cmd.Dir = a.workDir

	var output bytes.Buffer

	cmd.Stdout = &output
	cmd.Stderr = &output

	slog.Debug("Running gcov", "tool", a.tool, "args", args, "dir", a.workDir)

	if err := cmd.Run(); err != nil {
		slog.Error("gcov failed", "tool", a.tool, "path", rawPath, "output", output.String(), "error", err)
		return "", fmt.Errorf("%s %s: %w: %s", a.tool, rawPath, err, output.String())
	}

	slog.Debug("gcov finished", "output", output.String())

	decoded := filepath.Join(a.workDir, filepath.Base(string(rawPath))+DecodedExt)
	if _, err := os.Stat(decoded); err != nil {
		return "", fmt.Errorf("%s produced no %s: %w", a.tool, decoded, err)
	}

	return m.Path(decoded), nil
}
