package model

// MonitoredFile is one source file watched across dump iterations.
type MonitoredFile struct {
	// Source is the source path as the dump names it in its file tag.
	Source Path `mapstructure:"source" yaml:"source"`
	// Data is the dump re-read on every iteration (.gcda or .gcov).
	Data Path `mapstructure:"data" yaml:"data"`
	// Reference is the expected dump after the first iteration.
	Reference Path `mapstructure:"reference" yaml:"reference"`
	// Constant lines execute once and must keep their reference counts.
	Constant *LineRange `mapstructure:"constant" yaml:"constant,omitempty"`
	// Dynamic lines execute once per iteration.
	Dynamic *LineRange `mapstructure:"dynamic" yaml:"dynamic,omitempty"`
}

// FileVerdict collects the failed expectations for one monitored file.
type FileVerdict struct {
	Source   Path
	Data     Path
	Failures []string
}

// OK reports whether the file met every expectation.
func (v FileVerdict) OK() bool { return len(v.Failures) == 0 }

// Verdict is the outcome of checking one iteration.
type Verdict struct {
	Iteration int
	Files     []FileVerdict
}

// OK reports whether every file passed.
func (v Verdict) OK() bool {
	for _, f := range v.Files {
		if !f.OK() {
			return false
		}
	}

	return true
}
