package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// SnapshotExt is the extension of exported record snapshots.
const SnapshotExt = ".yaml"

// RecordStore saves parsed records as YAML snapshots and loads them back.
type RecordStore interface {
	SaveRecord(path m.Path, record *m.Record) error
	LoadRecord(path m.Path, sourceDirs []m.Path) (*m.Record, error)
	EncodeRecord(w io.Writer, record *m.Record) error
}

type snapshot struct {
	Source     string         `yaml:"source"`
	SourceDirs []string       `yaml:"source_dirs,omitempty"`
	Files      []snapshotFile `yaml:"files"`
}

type snapshotFile struct {
	Path      string     `yaml:"path"`
	Functions [][]string `yaml:"functions,flow"`
	Lines     [][]string `yaml:"lines,flow"`
	Branches  [][]string `yaml:"branches,flow"`
}

type yamlRecordStore struct{}

// NewRecordStore returns a RecordStore backed by YAML files.
func NewRecordStore() RecordStore {
	return &yamlRecordStore{}
}

func (s *yamlRecordStore) SaveRecord(path m.Path, record *m.Record) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	// #nosec G304 - snapshot path comes from the command line
	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	defer func() { _ = f.Close() }()

	if err := s.EncodeRecord(f, record); err != nil {
		return err
	}

	slog.Debug("Saved record snapshot", "path", path, "files", record.Len())

	return f.Close()
}

func (s *yamlRecordStore) EncodeRecord(w io.Writer, record *m.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(toSnapshot(record)); err != nil {
		return fmt.Errorf("encode record %s: %w", record.Source(), err)
	}

	return enc.Close()
}

// LoadRecord reads a snapshot. When sourceDirs is empty the directories
// stored in the snapshot are used.
func (s *yamlRecordStore) LoadRecord(path m.Path, sourceDirs []m.Path) (*m.Record, error) {
	// #nosec G304 - snapshot path comes from the command line
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}

	if len(sourceDirs) == 0 {
		sourceDirs = m.Paths(snap.SourceDirs)
	}

	builder := m.NewRecordBuilder(path, sourceDirs)

	for _, file := range snap.Files {
		if err := file.validate(); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
		}

		builder.OpenFile(m.Path(file.Path))

		for _, fields := range file.Functions {
			builder.AddFunction(m.Function{Fields: fields})
		}

		for _, fields := range file.Lines {
			builder.AddLineCount(m.LineCount{Fields: fields})
		}

		for _, fields := range file.Branches {
			builder.AddBranchCount(m.BranchCount{Fields: fields})
		}
	}

	return builder.Build(), nil
}

// validate applies the field counts the dump parser enforces.
func (f snapshotFile) validate() error {
	sections := []struct {
		name    string
		records [][]string
		min     int
	}{
		{"functions", f.Functions, m.MinFunctionFields},
		{"lines", f.Lines, m.MinLineCountFields},
		{"branches", f.Branches, m.MinBranchFields},
	}

	for _, section := range sections {
		for i, fields := range section.records {
			if len(fields) < section.min {
				return fmt.Errorf("%s %s[%d]: want at least %d fields, got %d", f.Path, section.name, i, section.min, len(fields))
			}
		}
	}

	return nil
}

func toSnapshot(record *m.Record) snapshot {
	snap := snapshot{
		Source: string(record.Source()),
		Files:  make([]snapshotFile, 0, record.Len()),
	}

	for _, dir := range record.SourceDirs() {
		snap.SourceDirs = append(snap.SourceDirs, string(dir))
	}

	for _, path := range record.Paths() {
		fc, _ := record.File(path)

		file := snapshotFile{
			Path:      string(path),
			Functions: make([][]string, 0, len(fc.Functions)),
			Lines:     make([][]string, 0, len(fc.LineCounts)),
			Branches:  make([][]string, 0, len(fc.BranchCounts)),
		}

		names := make([]string, 0, len(fc.Functions))
		for name := range fc.Functions {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			file.Functions = append(file.Functions, fc.Functions[name].Fields)
		}

		for _, lc := range fc.LineCounts {
			file.Lines = append(file.Lines, lc.Fields)
		}

		for _, bc := range fc.BranchCounts {
			file.Branches = append(file.Branches, bc.Fields)
		}

		snap.Files = append(snap.Files, file)
	}

	return snap
}
