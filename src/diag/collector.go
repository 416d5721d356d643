package diag

import "sync"

// Collector gathers diagnostics reported from concurrently-compiled files,
// adapted from the teacher's util/perror.go channel+mutex error sink: vslc
// compiles independent source files concurrently (spec.md §5 leaves batching
// of independent files open; SPEC_FULL.md's concurrency section), and each
// compile's eventual error (if any) is appended here under one lock instead
// of a shared, unsynchronized slice.
type Collector struct {
	mu   sync.Mutex
	errs []*PathError
}

// PathError pairs a diagnostic with the file path it came from.
type PathError struct {
	Path string
	Err  error
}

// NewCollector returns an empty Collector with n pre-allocated slots.
func NewCollector(n int) *Collector {
	if n < 1 {
		n = 16
	}
	return &Collector{errs: make([]*PathError, 0, n)}
}

// Report records err for path. A nil err is ignored.
func (c *Collector) Report(path string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, &PathError{Path: path, Err: err})
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}

// All returns every recorded diagnostic, in report order.
func (c *Collector) All() []*PathError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*PathError, len(c.errs))
	copy(out, c.errs)
	return out
}

// WorstExitCode returns the largest exit code among recorded diagnostics, or 0
// if none were recorded. Matches spec.md §6: a batch run's exit status must
// still be one of the closed taxonomy's codes.
func (c *Collector) WorstExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	worst := 0
	for _, e := range c.errs {
		if code := ExitCode(e.Err); code > worst {
			worst = code
		}
	}
	return worst
}
