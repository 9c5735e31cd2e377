package report

import "sync"

// Recorder captures reported messages for inspection in tests.
type Recorder struct {
	mu     sync.Mutex
	Infos  []string
	Warns  []string
	Errors []string
}

func (r *Recorder) Info(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

func (r *Recorder) Warn(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warns = append(r.Warns, msg)
}

func (r *Recorder) Error(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
