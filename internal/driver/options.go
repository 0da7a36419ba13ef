package driver

import "bong/internal/observ"

const (
	// DefaultInclude is the file pattern matched when walking directories.
	DefaultInclude = "*.bong"
	// DefaultMaxDiagnostics applies when Options.MaxDiagnostics is not positive.
	DefaultMaxDiagnostics = 100
)

// Options configures a tokenize or parse run.
type Options struct {
	MaxDiagnostics int
	// MaxDepth and NormalizeKeys are passed through to the parser.
	MaxDepth      int
	NormalizeKeys bool

	// Jobs limits parallel workers in directory runs; 0 = GOMAXPROCS.
	Jobs int
	// Include is the glob matched against base names; empty = DefaultInclude.
	Include string

	// Cache stores parsed trees by content hash; nil disables it.
	Cache *DiskCache
	// Timer collects per-phase durations for --timings; may be nil.
	Timer *observ.Timer
	// Events receives per-file progress; may be nil. The driver never closes it.
	Events chan<- Event
}

func (o Options) include() string {
	if o.Include == "" {
		return DefaultInclude
	}
	return o.Include
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}
