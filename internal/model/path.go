package model

import "strings"

// Path represents a file system path as it appears in a dump or on the command line.
type Path string

// HasPrefix reports whether dir is an exact leading substring of p. The test is
// textual: "src/a" is a prefix of "src/ab/x.c".
func (p Path) HasPrefix(dir Path) bool {
	return strings.HasPrefix(string(p), string(dir))
}

// InAny reports whether p has one of dirs as a prefix.
func (p Path) InAny(dirs []Path) bool {
	for _, dir := range dirs {
		if p.HasPrefix(dir) {
			return true
		}
	}

	return false
}

// Paths converts plain strings into Paths.
func Paths(values []string) []Path {
	paths := make([]Path, 0, len(values))
	for _, v := range values {
		paths = append(paths, Path(v))
	}

	return paths
}
