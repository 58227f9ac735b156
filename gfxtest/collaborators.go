package gfxtest

import (
	"io/fs"
	"sync"
)

// Sources is an in-memory gfx.SourceProvider keyed by identifier.
type Sources map[string]string

func (s Sources) Read(id string) (string, error) {
	src, ok := s[id]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: id, Err: fs.ErrNotExist}
	}
	return src, nil
}

// Report is one call to a Reporter.
type Report struct {
	Err        error
	ShouldFail bool
}

// Reporter records fatal reports and returns instead of terminating.
type Reporter struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Reporter) Report(err error, shouldFail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Err: err, ShouldFail: shouldFail})
}

// Reports returns a copy of the recorded reports.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Report(nil), r.reports...)
}

// Sink records warnings. It is safe to use from the cleanup goroutine.
type Sink struct {
	mu       sync.Mutex
	messages []string
}

func (s *Sink) Warn(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

// Messages returns a copy of the recorded warnings.
func (s *Sink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}
