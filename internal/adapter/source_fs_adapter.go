// Package adapter contains the infrastructure adapters used by the domain layer.
package adapter

import (
	"io"
	"os"
	"path/filepath"

	m "gcovcheck.dev/pkg/gcovcheck/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations needed to read dumps.
type SourceFSAdapter interface {
	// Open opens a file for reading.
	Open(path m.Path) (io.ReadCloser, error)

	// Ext returns the extension of path, including the dot.
	Ext(path m.Path) string
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Open opens the file at path.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	// #nosec G304 - dump path comes from the command line or config
	return os.Open(string(path))
}

// Ext returns the file name extension of path.
func (a *LocalSourceFSAdapter) Ext(path m.Path) string {
	return filepath.Ext(string(path))
}
