package domain

import (
	"context"
	"fmt"
	"log/slog"

	"gcovcheck.dev/pkg/gcovcheck/internal/adapter"
	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// Loader turns a dump path into a Record. Decoded text (.gcov) is parsed
// directly, exported snapshots (.yaml) are read back through the record store
// and anything else is handed to the gcov decoder first.
type Loader interface {
	Load(ctx context.Context, path m.Path, sourceDirs []m.Path) (*m.Record, error)
}

type loader struct {
	fsAdapter   adapter.SourceFSAdapter
	gcovAdapter adapter.GcovAdapter
	recordStore adapter.RecordStore
}

// NewLoader constructs a Loader backed by the provided adapters.
func NewLoader(fsAdapter adapter.SourceFSAdapter, gcovAdapter adapter.GcovAdapter, recordStore adapter.RecordStore) Loader {
	return &loader{
		fsAdapter:   fsAdapter,
		gcovAdapter: gcovAdapter,
		recordStore: recordStore,
	}
}

func (l *loader) Load(ctx context.Context, path m.Path, sourceDirs []m.Path) (*m.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch l.fsAdapter.Ext(path) {
	case adapter.DecodedExt:
		return l.parseFile(path, sourceDirs)
	case adapter.SnapshotExt:
		return l.recordStore.LoadRecord(path, sourceDirs)
	}

	decoded, err := l.gcovAdapter.Decode(ctx, path)
	if err != nil {
		slog.Error("Failed to decode coverage data", "path", path, "error", err)
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return l.parseFile(decoded, sourceDirs)
}

func (l *loader) parseFile(path m.Path, sourceDirs []m.Path) (*m.Record, error) {
	slog.Debug("Process gcov file", "path", path)

	f, err := l.fsAdapter.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	return Parse(f, path, sourceDirs)
}
