package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

// Report is a single call captured by Recorder.
type Report struct {
	Level  string
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory so tests can assert on them.
// It forwards to Inner when Inner is not nil.
type Recorder struct {
	Inner API

	mu      sync.Mutex
	reports []Report
	counts  map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{Inner: SlogAPI{}, counts: map[string]int64{}}
}

func (r *Recorder) record(level, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Level: level, Id: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
	if r.Inner != nil {
		r.Inner.ReportBroken(id, params...)
	}
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
	if r.Inner != nil {
		r.Inner.ReportWarning(id, params...)
	}
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	if r.Inner != nil {
		r.Inner.ReportDebug(msg, params...)
	}
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mu.Lock()
	if r.counts == nil {
		r.counts = map[string]int64{}
	}
	r.counts[id] = count
	r.mu.Unlock()
	if r.Inner != nil {
		r.Inner.ReportCount(id, count)
	}
}

// Reports returns every broken and warning report whose id ends with `suffix`.
func (r *Recorder) Reports(suffix string) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Report
	for _, rep := range r.reports {
		if strings.HasSuffix(rep.Id, suffix) {
			out = append(out, rep)
		}
	}
	return out
}

// Count returns the last count reported under an id ending with `suffix`.
func (r *Recorder) Count(suffix string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.counts {
		if strings.HasSuffix(id, suffix) {
			return n, true
		}
	}
	return 0, false
}

func (r Report) String() string {
	return fmt.Sprintf("%s %s %v", r.Level, r.Id, r.Params)
}
